// Package commands defines the memoy CLI and wires config, logging and the
// high-score ledger before any subcommand runs.
//
// Commands
//
//   - memoy          Open the title screen and menu, or start a game straight
//     away when any play flag (--grid, --timed, --time-limit, --name) is given
//   - memoy scores   Print the high-score table and exit
//
// Flags override values from .memoy/config.yaml, ~/.memoy/config.yaml and
// MEMOY_* environment variables.
package commands
