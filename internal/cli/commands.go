package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/smaersclient/fiskaly"
)

var errUsage = errors.New("usage")

func (a *App) ShowVersion(ctx context.Context) error {
	v, err := a.session.Version(ctx)
	if err != nil {
		return a.report(ctx, "version", err)
	}
	printlnFn("Version:", v.String())
	return nil
}

func (a *App) ShowConfig(ctx context.Context) error {
	cfg, err := a.session.Config(ctx)
	if err != nil {
		return a.report(ctx, "config", err)
	}
	printlnFn("Config:", cfg.String())
	return nil
}

// Configure expects: <debug_level> <debug_file> <client_timeout_ms> <smaers_timeout_ms>.
// A "-" leaves that setting out of the call.
func (a *App) Configure(ctx context.Context, args []string) error {
	if len(args) != 4 {
		printlnFn("Usage: configure <debug_level> <debug_file> <client_timeout_ms> <smaers_timeout_ms>")
		return errUsage
	}

	var params fiskaly.ConfigParams
	ints := []struct {
		raw string
		dst **int
	}{
		{args[0], &params.DebugLevel},
		{args[2], &params.ClientTimeout},
		{args[3], &params.SMAERSTimeout},
	}
	for _, f := range ints {
		if f.raw == "-" {
			continue
		}
		n, err := strconv.Atoi(f.raw)
		if err != nil {
			printlnFn("Not a number:", f.raw)
			return errUsage
		}
		*f.dst = fiskaly.Ptr(n)
	}
	if args[1] != "-" {
		params.DebugFile = fiskaly.Ptr(args[1])
	}

	cfg, err := a.session.Configure(ctx, params)
	if err != nil {
		return a.report(ctx, "configure", err)
	}
	printlnFn("Configuration:", cfg.String())
	return nil
}

// Request expects: <METHOD> <PATH> [json-body]. The body is sent base64
// encoded as the service requires.
func (a *App) Request(ctx context.Context, args []string) error {
	if len(args) < 2 {
		printlnFn("Usage: request <METHOD> <PATH> [json-body]")
		return errUsage
	}

	req := fiskaly.Request{Method: strings.ToUpper(args[0]), Path: args[1]}
	if len(args) > 2 {
		raw := strings.Join(args[2:], " ")
		var body any
		if err := json.Unmarshal([]byte(raw), &body); err != nil {
			printlnFn("Body is not valid JSON:", err.Error())
			return errUsage
		}
		encoded, err := fiskaly.EncodeBody(body)
		if err != nil {
			return err
		}
		req.Body = encoded
		req.Headers = map[string]string{"Content-Type": "application/json"}
	}

	res, err := a.session.Request(ctx, req)
	if err != nil {
		return a.report(ctx, "request", err)
	}
	printlnFn("Response:", string(res.Response))
	return nil
}

func (a *App) ShowContext(ctx context.Context) error {
	printlnFn("Context:", a.session.Context())
	return nil
}

// report prints err for the user and returns it unchanged.
func (a *App) report(ctx context.Context, op string, err error) error {
	printlnFn(describeError(err))
	a.log.Debug(ctx, "command failed", "command", op, "kind", fiskaly.KindOf(err).String())
	return err
}

func describeError(err error) string {
	var fe *fiskaly.Error
	if !errors.As(err, &fe) {
		return "Error: " + err.Error()
	}
	switch fe.Kind {
	case fiskaly.KindService:
		msg := fmt.Sprintf("Service error %d: %s", fe.Code, fe.Message)
		if resp, ok := fe.HTTPResponse(); ok {
			msg += fmt.Sprintf(" (backend status %d, request id %s)", resp.Status, resp.RequestID())
		}
		return msg
	case fiskaly.KindTimeout:
		return "Timed out: " + err.Error()
	case fiskaly.KindTransport:
		return "Transport error: " + err.Error()
	default:
		return "Error: " + err.Error()
	}
}
