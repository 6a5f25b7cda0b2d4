// Package fiskaly is a client for the fiskaly SMAERS service.
//
// # Overview
//
// SMAERS is reached over JSON-RPC 2.0 on HTTP. Every call except "version"
// carries an opaque session token, the Context, and every successful reply
// hands back the Context to use next. A Client owns exactly one Context and
// replaces it after each successful call:
//
//	c, err := fiskaly.NewWithCredentials(ctx, serviceURL, key, secret, "https://kassensichv.io/api/v1")
//	if err != nil {
//		return err
//	}
//	cfg, err := c.Configure(ctx, fiskaly.ConfigParams{DebugLevel: fiskaly.Ptr(4)})
//	...
//	res, err := c.Request(ctx, fiskaly.Request{Method: "PUT", Path: "/tss/...", Body: body})
//
// A session can be resumed in another process by passing Client.Context to
// NewWithContext; nothing is persisted by this package.
//
// # Error Handling
//
// Every failure is an *Error whose Kind tells the caller what went wrong:
//
//   - KindUsage: a constructor argument was missing. Field names it.
//   - KindTransport: the endpoint could not be reached, answered with a
//     non-2xx status, or returned something that is not a valid reply.
//   - KindTimeout: as KindTransport, but caused by a deadline.
//   - KindService: SMAERS answered with a JSON-RPC error object; Code and
//     Message are the remote values, untouched.
//
// The sentinels ErrUsage, ErrTransport, ErrTimeout, ErrService and
// ErrMalformedResponse can be matched with errors.Is. Nothing is retried.
//
// # Concurrency
//
// Calls on one Client are serialized; each call sends the Context left by
// the previous one. Context may be called at any time.
package fiskaly
