// Package script runs Lua init files that configure an editing session.
//
// Scripts run in a sandbox: only the base, string, table and math libraries
// are open, and the functions that load code from disk are removed. A
// script configures the session through these globals:
//
//	map(lhs, rhs)            -- command-mode map
//	map_input(lhs, rhs)      -- input-mode map
//	unmap(lhs [, input])     -- remove a map
//	abbreviate(lhs, rhs)     -- input-mode abbreviation
//	unabbreviate(lhs)        -- remove an abbreviation
//	set(name, value)         -- set an option; value may be a boolean,
//	                         -- number or string
//
// A failing call raises a Lua error, which stops the script and is returned
// from Run as a user error.
package script
