/*
Package config loads optional default settings shared by the textr tools.

	            +-------------+
	            |   Config    |
	            | (Defaults)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+-----+ +----+----+ +-----+-----+
	|    HCL    | |  YAML   | |   JSON    |
	|  Parser   | | Parser  | |  Parser   |
	+-----------+ +---------+ +-----------+

🎯 Purpose:
- Reads a defaults file named with --config
- Picks a parser from the file extension
- Validates the same mutual exclusions the command line enforces

🔄 Flow:
1. Reads the file through an afero filesystem
2. Parses format-specific syntax into Config
3. Validates the result
4. Commands apply a value only when its flag was not given explicitly

🔍 Example (HCL):

	wc {
	  lines  = true
	  words  = true
	  format = "json"
	}

	head {
	  lines = -2
	}

	source {
	  expand_globs = true
	  ignore       = ["build/**", "*.bin"]
	}
*/
package config
