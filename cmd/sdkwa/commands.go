package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/skip2/go-qrcode"
	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"

	sdkwa "github.com/sdkwa/sdkwa-go"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func newCommandFlags(name string, a *app) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("sdkwa "+name, pflag.ContinueOnError)
	flagSet.SetOutput(a.stderr)
	return flagSet
}

func runState(ctx context.Context, a *app, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("state: unexpected argument %q", args[0])
	}
	client, err := a.client()
	if err != nil {
		return err
	}
	defer client.Close()

	state, err := client.GetStateInstance(ctx)
	if err != nil {
		return err
	}
	return a.print(state)
}

func runSettings(ctx context.Context, a *app, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("settings: unexpected argument %q", args[0])
	}
	client, err := a.client()
	if err != nil {
		return err
	}
	defer client.Close()

	settings, err := client.GetSettings(ctx)
	if err != nil {
		return err
	}
	return a.print(settings)
}

func runSetSettings(ctx context.Context, a *app, args []string) error {
	var path string
	flagSet := newCommandFlags("set-settings", a)
	flagSet.StringVarP(&path, "file", "f", "", "settings file (JSON, comments and trailing commas allowed)")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if path == "" {
		return errors.New("set-settings: --file is required")
	}

	settings, err := loadSettings(path)
	if err != nil {
		return err
	}

	client, err := a.client()
	if err != nil {
		return err
	}
	defer client.Close()

	result, err := client.SetSettings(ctx, settings)
	if err != nil {
		return err
	}
	return a.print(result)
}

func loadSettings(path string) (sdkwa.Settings, error) {
	var settings sdkwa.Settings
	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("read settings: %w", err)
	}
	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&settings); err != nil {
		return settings, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return settings, nil
}

func runSendMessage(ctx context.Context, a *app, args []string) error {
	var req sdkwa.SendMessageRequest
	flagSet := newCommandFlags("send-message", a)
	flagSet.StringVar(&req.ChatID, "chat", "", "chat id, for example 79001234567@c.us")
	flagSet.StringVar(&req.Message, "text", "", "message text")
	flagSet.StringVar(&req.QuotedMessageID, "quote", "", "id of the message to quote")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if req.ChatID == "" || req.Message == "" {
		return errors.New("send-message: --chat and --text are required")
	}

	client, err := a.client()
	if err != nil {
		return err
	}
	defer client.Close()

	sent, err := client.SendMessage(ctx, req)
	if err != nil {
		return err
	}
	return a.print(sent)
}

// runQR writes a base64 PNG code to --png, or renders a raw QR payload in the
// terminal. Any other reply (already logged in, error) is printed as is.
func runQR(ctx context.Context, a *app, args []string) error {
	var pngPath string
	flagSet := newCommandFlags("qr", a)
	flagSet.StringVar(&pngPath, "png", "qr.png", "where to write the QR image when the server returns one")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	client, err := a.client()
	if err != nil {
		return err
	}
	defer client.Close()

	qr, err := client.GetQR(ctx)
	if err != nil {
		return err
	}
	if qr.Type != sdkwa.QRTypeCode {
		return a.print(qr)
	}

	if image, err := qr.PNG(); err == nil && bytes.HasPrefix(image, pngMagic) {
		if err := os.WriteFile(pngPath, image, 0o600); err != nil {
			return fmt.Errorf("write qr image: %w", err)
		}
		a.logger.Info().Str("path", pngPath).Msg("QR code written; scan it with the messenger app")
		return nil
	}

	code, err := qrcode.New(qr.Message, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("render qr code: %w", err)
	}
	_, err = fmt.Fprintln(a.stdout, code.ToSmallString(false))
	return err
}

func runInstances(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return errors.New("instances: expected one of list, create, extend, delete, restore")
	}
	action := args[0]
	if !slices.Contains([]string{"list", "create", "extend", "delete", "restore"}, action) {
		return fmt.Errorf("instances: unknown action %s", strconv.Quote(action))
	}

	var (
		id    int64
		order sdkwa.InstanceOrder
	)
	flagSet := newCommandFlags("instances "+action, a)
	flagSet.Int64Var(&id, "id", 0, "instance id (extend, delete, restore)")
	flagSet.StringVar(&order.Tariff, "tariff", "", "tariff (create, extend)")
	flagSet.StringVar(&order.Period, "period", "", "billing period (create, extend)")
	flagSet.StringVar(&order.PaymentType, "payment-type", "", "payment type (create, extend)")
	if err := flagSet.Parse(args[1:]); err != nil {
		return err
	}

	client, err := a.instanceClient()
	if err != nil {
		return err
	}
	defer client.Close()

	var result *sdkwa.InstanceResponse
	switch action {
	case "list":
		result, err = client.ListInstances(ctx)
	case "create":
		if order.Tariff == "" || order.Period == "" {
			return errors.New("instances create: --tariff and --period are required")
		}
		result, err = client.CreateInstance(ctx, order)
	case "extend":
		if id == 0 || order.Tariff == "" || order.Period == "" {
			return errors.New("instances extend: --id, --tariff and --period are required")
		}
		result, err = client.ExtendInstance(ctx, id, order)
	case "delete":
		if id == 0 {
			return errors.New("instances delete: --id is required")
		}
		result, err = client.DeleteInstance(ctx, id)
	case "restore":
		if id == 0 {
			return errors.New("instances restore: --id is required")
		}
		result, err = client.RestoreInstance(ctx, id)
	}
	if err != nil {
		return err
	}
	return a.print(result)
}
