/*
Package operation runs section removals against files on disk.

	+-------------+      +-------------+      +-------------+
	|    Plan     | ---> |   Excise    | ---> |   Runner    |
	| (targets)   |      | (per file)  |      | (sync/async)|
	+-------------+      +------+------+      +-------------+
	                            |
	          +-----------------+-----------------+
	          |                 |                 |
	    +-----+-----+     +-----+-----+     +-----+-----+
	    |  fileio   |     |  section  |     |    log    |
	    | (read/    |     | (locate/  |     | (one line |
	    |  write)   |     |  splice)  |     |  per file)|
	    +-----------+     +-----------+     +-----------+

🔄 Flow per file:
1. Read the whole file
2. Remove the section in memory
3. Not found: report and stop, the file is untouched
4. Dry run: render the diff, report, stop
5. Guard, backup, write in place, report

A missing section is an outcome, not an error. Read and write failures are
errors and stop the run.

🔍 Example:

	ops, err := operation.Plan(ctx, cfg, operation.Options{Files: fileio.New(".")})
	err = operation.NewRunner(&logger, cfg.Async).Run(ctx, operation.Operations(ops)...)
*/
package operation
