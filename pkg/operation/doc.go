/*
Package operation implements the patcher: read a source file, apply the
replacement rules in order, write the destination.

	+-------------+      +-------------+      +-------------+
	|   Source    | ---> |    Rules    | ---> | Destination |
	| (document)  |      |   (text)    |      | (document)  |
	+-------------+      +-------------+      +-------------+

🔄 Flow:
1. Load the whole source into memory, failing on missing, unreadable or non UTF-8 files
2. Attempt every rule, each on the output of the previous one
3. Replace the destination in full, once, after all rules have run

Nothing is written when loading or a rule fails, so a missing source never
creates or truncates the destination. A dry run stops after step 2 and
compares the result with the current destination instead.

🔍 Example:

	cfg := config.Default(".")
	ops := operation.FromConfig(cfg, false)
	err := operation.NewRunner(cfg.Async).Run(ctx, operation.Operations(ops)...)
*/
package operation
