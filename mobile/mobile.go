package mobile

import (
	"net/http"

	"go.uber.org/zap"

	"pawnpuzzle/internal/server/game"
	httpserver "pawnpuzzle/internal/server/http"
	"pawnpuzzle/internal/server/ws"
	"pawnpuzzle/internal/store"
)

// StartServer starts the local HTTP server for an embedding app.
// webDir: physical path to the extracted web assets
// dataDir: where saved layouts live; empty keeps them in memory
// port: port to listen on, e.g. "2888"
func StartServer(webDir string, dataDir string, port string) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		logger = zap.NewNop()
	}

	var layouts store.LayoutStore = store.NewMemory()
	if dataDir != "" {
		layouts = store.NewFS(dataDir)
	}

	origins := []string{"http://127.0.0.1:" + port, "http://localhost:" + port}
	games := game.NewManager(logger)
	h := httpserver.NewHandler(games, layouts, logger)
	handler := httpserver.NewRouter(h, httpserver.Options{
		WebDir:  webDir,
		Live:    ws.NewHub(games, origins, logger),
		Origins: origins,
		Log:     logger,
	})

	// Run in background so it doesn't block the UI thread
	go func() {
		if err := http.ListenAndServe("127.0.0.1:"+port, handler); err != nil {
			logger.Error("server error", zap.Error(err))
		}
	}()
}
