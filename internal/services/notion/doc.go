// Package notion publishes finished notes as pages in a Notion database.
package notion
