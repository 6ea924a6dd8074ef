// Package logger provides a singleton Zap logger with context-based scoping.
//
// Init se llama una vez desde main con la config efectiva; cada request
// recibe un logger "scoped" (request_id, method, path) via middleware que se
// recupera con From(ctx). Fuera de un request se usa L().
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
//	defer logger.Sync()
//
//	log := logger.From(ctx)
//	log.Info("login accepted", logger.Challenge(ch), logger.Subject(sub))
package logger
