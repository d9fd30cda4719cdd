// Package core implements the catalog domain: importing pasted chiller
// catalog tables and selecting units against a capacity target.
//
// The package is independent of any UI or transport layer. The CLI, the web
// server, and the tests all drive the same [Service].
//
// # Importing
//
// Manufacturers publish catalog tables as spreadsheet exports, so the
// importer accepts the mess that copy/paste produces: tab or comma
// delimiters ([DetectDelimiter]), shuffled and renamed headers
// ([MapColumns]), Excel ="..." cell wrappers, thousands separators, and
// compound cells like "3.4/7.7" pressure drops or "152.0 L 89.0 W 89.0 H
// (in)" dimensions. [ParseBatch] turns one block of text into validated
// [CatalogRow] values plus per-line failures; only an empty input or a
// header missing model/capacity/efficiency is fatal.
//
// Because tables carry no condition columns, the caller supplies the
// operating condition ([Conditions]) and it is stamped on every row. The
// same model imported under several conditions yields several rows.
//
// # Selecting
//
// [Search] is a pure function over a catalog snapshot:
//
//  1. Filter to rows rated at exactly the requested ambient.
//  2. Widen a capacity band around the target: ±10%, then ±20%.
//  3. Rank by capacity delta, water-temperature deviation, efficiency
//     (kW/ton, lower is better), then water flow descending.
//
// The best pick plus the nearest in-band alternates above and below the
// target come back in [RankedResults]. "Nothing at this ambient" and
// "nothing in band" are outcomes, not errors; the service attaches
// [ProbeAmbients] suggestions when the ambient itself is unknown.
//
// # Service and Store
//
// [Service] wires the importer and selector to a [Store] (postgres, a local
// YAML file, or memory; see internal/store). Imports commit under a UUID
// batch ID so [Service.Rollback] can remove exactly the rows one paste
// created.
//
// # Error Handling
//
// Technical errors are mapped to user-facing messages with support codes
// using [MapError]:
//
//   - IMP001-IMP006: import errors (empty input, missing columns, ...)
//   - DB001-DB005: database errors
//   - FILE001-FILE003: catalog file errors (size, missing, encoding)
//   - REQ001-REQ003: request errors (cancelled, timed out, importer busy)
package core
