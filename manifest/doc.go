// Package manifest records what a compression run produced: the search
// statistics and a BLAKE3 digest of every artifact file. A manifest is stored
// as YAML next to the artifacts and lets a later decompression check that it's
// reading the files the compression wrote.
package manifest
