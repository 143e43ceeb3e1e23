// Package ui is the Bubble Tea terminal browser for the show catalog.
//
// # Layout
//
//	♫ setlist  Shows · Bands                      ● Backend Connected
//	search: all  genre: Rock  venue: all  sort: Price  c clears
//	2024-02-15 Rock Legends Live  $75.00  ★5  │ Rock Legends Live
//	...                                       │ 2024-02-15 20:00  $75.00
//	/ Search  g Cycle genre  v Cycle venue  s Cycle sort  ...
//
// The list is derived on every render with query.FilterShows or
// query.FilterBands from the collections last fetched through the
// DataSource. Nothing is cached beyond that fetch; r refetches.
//
// # Status indicator
//
// The pill in the header mirrors the availability monitor. A tick re-reads
// the monitor snapshot every second. The indicator is informational only:
// fetches always go through the fallback client whatever it shows.
//
// # Preferences
//
// Theme (T) and sort key (s) changes, and clearing filters (c), are saved
// to prefs.toml right away.
package ui
