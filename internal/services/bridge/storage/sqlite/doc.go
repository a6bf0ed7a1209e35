// Package sqlite stores native actor documents and the creature index in a
// local SQLite database. It serves as the bridge host when no live game
// server is attached.
package sqlite
