// Package app is the composition root for the phrasebook commands.
//
// Each command loads the layered configuration (config file, dotenv file,
// PHRASEBOOK_* variables, then flag overrides) and wires the domain
// packages together:
//
//   - Browse: phrases client, catalog, preferences and the system browser
//     feed the Bubble Tea UI. Logs go to a file because the terminal is
//     owned by the UI.
//   - Serve: the library store is filled once, then the reloader (file
//     watcher plus periodic fallback) and the HTTP server run together in
//     an errgroup. Every reload republishes the response cache from the new
//     snapshot; the cache is Redis when redis_addr is set and in-memory
//     otherwise. Handlers only read it.
//   - Check: every category document is fetched in parallel and reported
//     as a table. Categories without a resource are listed as skipped.
//   - Tail: the last lines of the browser log, pretty-printed.
//
// Fatal errors are configuration, catalog, log file and client setup
// failures. Fetch failures inside the browser are shown on the page and
// never end the program.
package app
