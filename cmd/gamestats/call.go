package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/morezero/gamestats/internal/server"
	"github.com/morezero/gamestats/pkg/client"
	"github.com/morezero/gamestats/pkg/gateway"
)

type callOptions struct {
	params     []string
	paramsJSON string
	region     string
	key        string
	id         string
}

func newCallCmd() *cobra.Command {
	var opts callOptions
	cmd := &cobra.Command{
		Use:   "call <method>",
		Short: "Invoke one stats operation and print the response envelope",
		Long:  "Invoke one stats operation by its gateway name (see 'gamestats methods').\nExample: gamestats call getSummonersByNames --param names=foo,bar --region euw",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if opts.key != "" {
				cfg.APIKey = opts.key
			}
			if err := cfg.ValidateForCall(); err != nil {
				return err
			}

			params, err := buildParams(opts.params, opts.paramsJSON)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			cat, pool, err := server.LoadCatalog(ctx, cfg)
			if err != nil {
				return err
			}
			if pool != nil {
				pool.Close()
			}
			c, err := client.New(client.Options{
				Credential: cfg.APIKey,
				Region:     cfg.Region,
				Catalog:    cat,
				Timeout:    cfg.HTTPTimeout,
			})
			if err != nil {
				return err
			}

			req := &gateway.CallRequest{ID: opts.id, Method: args[0], Params: params}
			if opts.region != "" {
				req.Ctx = &gateway.InvocationContext{Region: opts.region}
			}
			resp, err := runCall(ctx, cmd.OutOrStdout(), gateway.NewRouter(gateway.NewRouterParams{Client: c}), req)
			if err != nil {
				return err
			}
			if !resp.Ok {
				return fmt.Errorf("%s failed: %s", args[0], resp.Error.Code)
			}
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringArrayVarP(&opts.params, "param", "p", nil, "parameter as key=value; JSON values (numbers, booleans, arrays) are decoded")
	fs.StringVar(&opts.paramsJSON, "params", "", "all parameters as one JSON object; --param entries override its keys")
	fs.StringVarP(&opts.region, "region", "r", "", "region for this call (default STATS_REGION)")
	fs.StringVarP(&opts.key, "key", "k", "", "API key (default STATS_API_KEY)")
	fs.StringVar(&opts.id, "id", "cli", "request id echoed in the response")
	return cmd
}

// runCall routes req and prints the indented response envelope.
func runCall(ctx context.Context, out io.Writer, router *gateway.Router, req *gateway.CallRequest) (*gateway.CallResponse, error) {
	resp := router.Route(ctx, req)
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	if _, err := fmt.Fprintln(out, string(data)); err != nil {
		return nil, err
	}
	return resp, nil
}

// buildParams merges a JSON object with key=value pairs. A value that parses as JSON
// keeps its JSON type; anything else is sent as a string.
func buildParams(pairs []string, raw string) (json.RawMessage, error) {
	merged := make(map[string]json.RawMessage)
	if strings.TrimSpace(raw) != "" {
		if err := json.Unmarshal([]byte(raw), &merged); err != nil {
			return nil, fmt.Errorf("--params must be a JSON object: %w", err)
		}
	}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("--param %q: want key=value", pair)
		}
		if json.Valid([]byte(value)) && value != "" {
			merged[key] = json.RawMessage(value)
			continue
		}
		quoted, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		merged[key] = quoted
	}
	if len(merged) == 0 {
		return nil, nil
	}
	return json.Marshal(merged)
}

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List the operation names accepted by call and the gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, m := range gateway.Methods() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), m); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
