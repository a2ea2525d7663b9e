// Package config provides configuration loading for the taskctl client.
//
// Configuration is assembled from three sources, in increasing precedence:
//
//  1. Defaults (LoadDefaults)
//  2. Optional JSON file, selected with -c or -config
//  3. Command-line flags (-a server URL, -f session file, -i request timeout in seconds)
//
// Whatever follows the flags is the command to run; see CommandArgs.
package config
