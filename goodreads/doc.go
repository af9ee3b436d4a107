// Package goodreads provides a client for the Goodreads web API.
//
// Every operation runs through the same pipeline: the credential gate checks
// the operation's tier, parameters are flattened into a form (nested maps
// become parent[child] keys), a shared limiter keeps one second between
// requests, the transport performs the request, and the response is normalized
// into a *Value tree.
//
// # Access tiers
//
//   - Developer tier: needs the key/secret pair given to NewClient; the key is
//     added to the request automatically.
//   - User tier: needs a *Session obtained through the OAuth 1.0a handshake
//     (RequestToken, AuthorizeURL, GetSession) or rebuilt from stored tokens
//     with NewSession.
//
// Calls missing their credential fail with *ConfigurationError before any
// request is made.
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	client, err := goodreads.NewClient("key", "secret", logger,
//		goodreads.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	author, err := client.AuthorShow(ctx, "18541")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(author.Field("name"))
//
//	books := client.AuthorBooksIterator("18541", 100)
//	for books.Next(ctx) {
//		fmt.Println(books.Item().Field("title"))
//	}
//
// # Response trees
//
// XML attributes appear under "@name" keys, and an element with attributes
// keeps its text under "#text". A type-annotated leaf such as
// <id type="integer">5</id> is therefore a map, not a string; use Value.Text
// to read either shape. Repeated elements become lists, but a single
// occurrence does not; use Value.AsList when a key may repeat.
//
// # Error Handling
//
//   - *ConfigurationError: missing developer credentials or session
//   - *HTTPError: non-2xx response, with status code and body
//   - *InvalidResponseError: the expected container is absent
//   - *UnsupportedOperationError: PUT and DELETE endpoints
//
// Nothing is retried automatically.
package goodreads
