/*
Package section removes marker-bounded sections from text documents.

	+-----------------+      +----------------+
	|  start marker   | ---> |   end marker   | ---> first line ending in ";"
	| (or fallback)   |      | (declaration)  |
	+-----------------+      +----------------+
	         \___________ removed span ____________/

🎯 Purpose:
- Find where a section begins (primary marker, then fallback marker)
- Find where it ends (the first line after the end marker whose trimmed text
  ends with the terminator)
- Splice the section out and drop newlines left at the cut

🔄 Flow:
1. Locate both boundaries
2. Refuse to mutate unless both exist and start <= end
3. Splice

📝 The end boundary is a line heuristic. With irregular formatting it can pick a
line the author did not mean; that behavior is kept as-is.
*/
package section
