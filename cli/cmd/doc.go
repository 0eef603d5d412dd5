// Package cmd implements the cfgconv subcommands.
//
//   - [Convert] writes "name := literal;" lines for a YAML mapping.
//   - [Check] reports every entry's outcome without stopping at the first
//     failure.
//   - [Dump] prints the parsed document as YAML or JSON.
//   - [Init] writes the current flag values to the configuration file.
//
// Paths given as "-" name stdin for input and stdout for output.
package cmd

// ConfigIdentifier is the kong variable identifier containing the path to the
// configuration file.
var ConfigIdentifier = "config"
