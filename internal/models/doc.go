// Package models defines the data model for the cratesync sheet pipeline.
//
// The package contains three categories of types:
//
// 1. Sheet types: the published CSV surface
//   - [Row] : One sheet line with canonical and override columns
//   - [Columns] : The fixed header every sheet is written with
//   - [Override] / [OverrideSet] : Curator-owned values preserved across syncs
//
// 2. Configuration types: what a sync operates on
//   - [Target] : A configured playlist and its destination sheet
//   - [CollectionType] : Whether a target maps to track rows or album rows
//
// 3. Provider types: what a fetch returns
//   - [RemoteItem] : One playlist entry in provider-neutral form
//   - [RemoteTrack] / [RemoteAlbum] : The track and album halves of an entry
//
// Types here are passive values. Fetching, normalization, and merging live in
// the services and tasks packages.
package models
