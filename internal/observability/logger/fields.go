package logger

import (
	"go.uber.org/zap"
)

// ─── HTTP ───

func RequestID(v string) zap.Field { return zap.String("request_id", v) }
func Method(v string) zap.Field    { return zap.String("method", v) }
func Path(v string) zap.Field      { return zap.String("path", v) }
func Route(v string) zap.Field     { return zap.String("route", v) }
func Status(v int) zap.Field       { return zap.Int("status", v) }
func Bytes(v int) zap.Field        { return zap.Int("bytes", v) }
func ClientIP(v string) zap.Field  { return zap.String("client_ip", v) }
func UserAgent(v string) zap.Field { return zap.String("user_agent", v) }

// DurationMs crea un campo para la duración en milisegundos.
func DurationMs(v int64) zap.Field { return zap.Int64("duration_ms", v) }

// ─── Login / consent ───

// Challenge loguea el challenge de Hydra. Es un token opaco de un solo uso,
// no un secreto de larga vida.
func Challenge(v string) zap.Field { return zap.String("challenge", v) }

// Subject crea un campo para el subject (identity id de Kratos).
func Subject(v string) zap.Field { return zap.String("subject", v) }

// ClientID crea un campo para el ID del cliente OAuth.
func ClientID(v string) zap.Field { return zap.String("client_id", v) }

func Skip(v bool) zap.Field          { return zap.Bool("skip", v) }
func Scopes(v []string) zap.Field    { return zap.Strings("scopes", v) }
func RedirectTo(v string) zap.Field  { return zap.String("redirect_to", v) }
func Upstream(v string) zap.Field    { return zap.String("upstream", v) }
func UpstreamStatus(v int) zap.Field { return zap.Int("upstream_status", v) }
func SessionID(v string) zap.Field   { return zap.String("session_id", v) }

// ─── Sistema ───

func Component(v string) zap.Field { return zap.String("component", v) }
func Op(v string) zap.Field        { return zap.String("op", v) }
func Layer(v string) zap.Field     { return zap.String("layer", v) }
func Err(err error) zap.Field      { return zap.Error(err) }

func Any(key string, v any) zap.Field          { return zap.Any(key, v) }
func String(key, v string) zap.Field           { return zap.String(key, v) }
func Int(key string, v int) zap.Field          { return zap.Int(key, v) }
func Bool(key string, v bool) zap.Field        { return zap.Bool(key, v) }
func Strings(key string, v []string) zap.Field { return zap.Strings(key, v) }
