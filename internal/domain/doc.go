// Package domain decodes U.S. Naval Observatory (USNO) one-year sunrise/sunset
// tables and normalizes the printed times to local clock time.
//
// # Data Source
//
// Tables come from the USNO Astronomical Applications "Rise and Set for the
// Sun" one-year service. Each table is plain text, one file per location and
// year, printed in a fixed zone standard time (this package assumes UTC-5
// with the post-2007 U.S. daylight saving schedule).
//
// # Layout
//
// Header (lines 0-8):
//
//	Line 1 carries the publication year as "... Rise and Set for the Sun for 2024 ...".
//	The remaining header lines are titles, month names, and column units and
//	are never inspected.
//
// Data rows (line 9 onward):
//
//	One row per day-of-month position (01..31), shared by all twelve months:
//
//	  01  0716 1654  0705 1728  ...
//	  ^^^^ ^^^^^^^^^^^
//	  |    month block (11 chars, 9 used): "HHMM HHMM" + 2 chars padding
//	  day label (4 chars, stripped)
//
//	The block for month m starts at offset 11*(m-1) after the label. Dates
//	that do not exist (Feb 30, Apr 31) are printed as blanks.
//
// Time format:
//
//	HHMM in 24-hour notation, zero padded: "0716" = 07:16 standard time.
//
// # Daylight Saving Time
//
// Printed times never include daylight time. A [DSTWindow] is computed once
// per year: from the second Sunday of March at 02:00 to the first Sunday of
// November at 02:00. Any time inside the window is shifted forward one hour.
// The shift never rolls into the next calendar day because no sunrise or
// sunset printed in these tables falls in the last hour before midnight.
//
// # Errors
//
// Parsing is all-or-nothing. [FormatError], [UnsupportedYearError], and
// [MalformedTimeTokenError] abort the whole table; no partial [ResultSet] is
// ever returned.
package domain
