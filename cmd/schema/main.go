package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"splatwalk/internal/transport/ws"
)

// protocolMessages - все сообщения WebSocket протокола, сведенные в один
// документ для генерации схемы (валидация и подсказки в клиенте)
type protocolMessages struct {
	Input       ws.InputMessage       `json:"input"`
	Look        ws.LookMessage        `json:"look"`
	ToggleView  ws.ToggleViewMessage  `json:"toggle_view"`
	ToggleMute  ws.ToggleMuteMessage  `json:"toggle_mute"`
	Ping        ws.PingMessage        `json:"ping"`
	Info        ws.InfoMessage        `json:"info"`
	WorldInit   ws.WorldInitMessage   `json:"world_init"`
	AssetStatus ws.AssetStatusMessage `json:"asset_status"`
	Camera      ws.CameraMessage      `json:"camera"`
	ViewMode    ws.ViewModeMessage    `json:"view_mode"`
	Mute        ws.MuteMessage        `json:"mute"`
	Pong        ws.PongMessage        `json:"pong"`
}

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "", "куда записать JSON схему протокола")
	flag.Parse()

	if outPath == "" {
		fmt.Fprintln(os.Stderr, "--out is required")
		os.Exit(1)
	}

	schema := buildSchema()

	if err := writeSchema(outPath, schema); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
		os.Exit(1)
	}
}

func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(new(protocolMessages))
	schema.Title = "Splatwalk WebSocket Protocol"
	schema.Description = "Сообщения между браузерным клиентом и сервером мира"
	return schema
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}

	return nil
}
