/*
Package config loads the optional snip configuration.

	            +-------------+
	            |   Config    |
	            |  (Targets)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   HCL    | |   YAML   | |   JSON   |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Names the file(s) to rewrite and the markers bounding each section
- Falls back to the built-in target when no file exists

🔄 Flow:
1. Pick a parser by file extension
2. Decode with unknown fields rejected
3. Fill defaults and validate

A target that sets none of start, fallback and end gets all three defaults.
Setting any of them opts out of the defaults for the other two.
*/
package config
