// Command voxlog is the CLI entry point: it runs the API server with an
// optional embedded worker, runs a standalone remote worker, and provides
// client and queue management commands.
package main
