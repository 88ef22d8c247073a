/*
Package config manages the optional homepatch configuration file.

	            +-------------+
	            |   Config    |
	            |  (Targets,  |
	            |   Rules)    |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   HCL    | |   JSON   |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Provides the built-in configuration when no file is given
- Loads targets and extra rules from YAML, HCL or JSON
- Validates targets and rules before anything is read or written

🔄 Flow:
1. Default() or Load() builds a Config
2. Parsers decode their format into a shared shape
3. Built-in rules are prepended unless use_default_rules is false
4. Validate() cleans paths and rejects duplicate destinations

🔍 Example:

	targets:
	  - source: src/components/HomePage.backup.tsx
	    destination: src/components/HomePage.tsx
	rules:
	  - name: footer year
	    old: "© 2024"
	    new: "© 2025"
	    file: "*.tsx"
	atomic: true
*/
package config
