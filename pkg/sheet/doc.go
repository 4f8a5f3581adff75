// Package sheet exposes the in-memory worksheet model the conversion engine
// scans: a grid of generic cells plus the Source and Reader contracts used to
// materialise it. Workbook decoding lives under internal/sheet so the
// container library stays hidden from consumers.
package sheet
