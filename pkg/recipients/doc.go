// Package recipients loads delimited recipient tables for bulk mail campaigns.
//
// A recipient file is UTF-8 text whose first row is a header naming the
// columns; every following row is one recipient. The delimiter is detected
// automatically among comma, semicolon, and tab by sampling the first
// kilobyte of the file, falling back to comma when the sample is
// inconclusive.
//
// Loading is strict about structure but lenient about content: cells are
// trimmed of surrounding whitespace, rows whose every cell is empty are
// skipped, and rows with some empty cells are kept. The loaded list is a
// fresh, read-only snapshot of the file.
//
// Usage:
//
//	list, err := recipients.Load("recipients.csv")
//	if err != nil {
//		return err
//	}
//	for _, rec := range list.Records {
//		fmt.Println(rec.Get("email"))
//	}
package recipients
