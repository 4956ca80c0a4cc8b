// Package notionapi uploads rendered block trees to the block API.
//
// The converter produces nested blocks; the API only accepts children under
// an existing block id. AppendTree walks the tree breadth-first, appends each
// level in batches and re-parents children under the ids the API returns.
package notionapi
