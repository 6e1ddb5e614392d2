// Package server implements the commands shared by custody daemons:
// genesis file handling, identity generation and script execution.
package server
