// Package fetch retrieves PX documents from URLs and local files.
//
// A locator is either a network URL (http, https or ftp scheme) or a
// filesystem path; anything that does not carry one of those schemes is
// treated as a path. Retrieved bytes are decoded from the document's
// charset to UTF-8 text, ready for the parser.
//
// # Basic Usage
//
// Fetch a document over HTTP:
//
//	f := fetch.New(fetch.DefaultConfig())
//	text, err := f.Fetch(ctx, "https://pxweb.example.org/table.px", "ISO-8859-15")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Read a local file instead:
//
//	text, err := f.Fetch(ctx, "/data/table.px", "windows-1252")
//
// # Charsets
//
// PX files predate UTF-8 and usually arrive in a legacy charset such as
// ISO-8859-15 or windows-1252. The charset argument names the source
// encoding by its IANA name; the empty string means the bytes are already
// UTF-8.
//
// # Errors
//
// Non-success HTTP responses surface as *StatusError. Transport failures,
// unreadable files and unknown charsets return wrapped errors from the
// standard library.
package fetch
