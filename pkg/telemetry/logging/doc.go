// Package logging configures log/slog for the gateway.
//
// New returns a *slog.Logger whose handler:
//   - writes JSON or text at the configured level
//   - adds request_id, client, route and trace_id from the context of
//     every *Context logging call
//   - masks API keys, bearer tokens and other credentials in messages,
//     attribute values and errors
//
// # Usage
//
//	logger, err := logging.Setup(logging.Config{Level: "info", Format: "json"})
//	if err != nil {
//	    return err
//	}
//
//	ctx = logging.WithRequestID(ctx, id)
//	logger.InfoContext(ctx, "chat completed", "duration_ms", 812)
//
// Chat messages and translated text are never logged.
package logging
