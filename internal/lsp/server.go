// Package lsp implements a language server that keeps a project's generated
// theme in sync while the editor is open, and assists with editing the
// accentsync config.
package lsp

import (
	"net/url"
	"path/filepath"
	"sync"

	"github.com/jsvensson/accentsync"
	"github.com/jsvensson/accentsync/internal/color"
	"github.com/jsvensson/accentsync/internal/config"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const (
	serverName          = "accentsync-lsp"
	watchRegistrationID = "accentsync-watched-files"
)

var log = commonlog.GetLogger("accentsync.lsp")

type Server struct {
	handler   protocol.Handler
	docs      *DocumentStore
	version   string
	configDir string

	mu           sync.Mutex
	root         string
	engine       *accentsync.Engine // nil until a root is known or while the config is invalid
	dynamicWatch bool               // client accepts file watcher registrations
}

// NewServer creates a server that reads base themes from configDir.
func NewServer(version, configDir string) *Server {
	s := &Server{
		docs:      NewDocumentStore(),
		version:   version,
		configDir: configDir,
	}

	s.handler = protocol.Handler{
		Initialize:                     s.initialize,
		Initialized:                    s.initialized,
		Shutdown:                       s.shutdown,
		SetTrace:                       s.setTrace,
		TextDocumentDidOpen:            s.textDocumentDidOpen,
		TextDocumentDidChange:          s.textDocumentDidChange,
		TextDocumentDidClose:           s.textDocumentDidClose,
		TextDocumentDidSave:            s.textDocumentDidSave,
		WorkspaceDidChangeWatchedFiles: s.workspaceDidChangeWatchedFiles,
		TextDocumentHover:              s.textDocumentHover,
		TextDocumentColor:              s.textDocumentColor,
		TextDocumentColorPresentation:  s.textDocumentColorPresentation,
		TextDocumentFormatting:         s.textDocumentFormatting,
	}

	return s
}

// Run serves over stdio until the client disconnects. Logging is configured
// by the caller.
func (s *Server) Run() error {
	srv := server.NewServer(&s.handler, serverName, false)
	return srv.RunStdio()
}

func (s *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &protocol.True,
		Change:    &syncKind,
		Save:      &protocol.True,
	}

	s.mu.Lock()
	s.dynamicWatch = canRegisterWatchers(params)
	s.mu.Unlock()

	if root := workspaceRoot(params); root != "" {
		s.mu.Lock()
		s.root = root
		s.mu.Unlock()
		s.reload()
	} else {
		log.Warning("client sent no workspace root, syncing disabled")
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &s.version,
		},
	}, nil
}

// workspaceRoot picks the project directory from the initialize request:
// rootUri, then rootPath, then the first workspace folder.
func workspaceRoot(params *protocol.InitializeParams) string {
	if params.RootURI != nil && *params.RootURI != "" {
		return uriToPath(string(*params.RootURI))
	}
	if params.RootPath != nil && *params.RootPath != "" {
		return *params.RootPath
	}
	if len(params.WorkspaceFolders) > 0 {
		return uriToPath(params.WorkspaceFolders[0].URI)
	}
	return ""
}

func canRegisterWatchers(params *protocol.InitializeParams) bool {
	ws := params.Capabilities.Workspace
	return ws != nil && ws.DidChangeWatchedFiles != nil &&
		ws.DidChangeWatchedFiles.DynamicRegistration != nil && *ws.DidChangeWatchedFiles.DynamicRegistration
}

func (s *Server) initialized(ctx *glsp.Context, _ *protocol.InitializedParams) error {
	s.sync("startup")
	s.registerWatchers(ctx)
	return nil
}

// registerWatchers asks the client to report changes to the config and
// settings files, including those made outside the editor.
func (s *Server) registerWatchers(ctx *glsp.Context) {
	s.mu.Lock()
	root, engine, ok := s.root, s.engine, s.dynamicWatch
	s.mu.Unlock()
	if ctx == nil || ctx.Call == nil || !ok || root == "" {
		return
	}

	paths := []string{filepath.Join(root, config.FileName)}
	if engine != nil {
		paths = append(paths, engine.SettingsPath())
	}
	watchers := make([]protocol.FileSystemWatcher, 0, len(paths))
	for _, p := range paths {
		watchers = append(watchers, protocol.FileSystemWatcher{GlobPattern: filepath.ToSlash(p)})
	}

	params := protocol.RegistrationParams{
		Registrations: []protocol.Registration{{
			ID:              watchRegistrationID,
			Method:          protocol.MethodWorkspaceDidChangeWatchedFiles,
			RegisterOptions: protocol.DidChangeWatchedFilesRegistrationOptions{Watchers: watchers},
		}},
	}

	// Requests are handled one at a time, so the reply can only be read
	// after this handler returns.
	go func() {
		var result any
		ctx.Call(protocol.ServerClientRegisterCapability, params, &result)
	}()
}

func (s *Server) shutdown(_ *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	s.docs.Open(uri, uriToPath(uri), params.TextDocument.Text)
	s.publishDiagnostics(ctx, uri)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	for _, change := range params.ContentChanges {
		if c, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			s.docs.Update(uri, c.Text)
		}
	}
	s.publishDiagnostics(ctx, uri)
	return nil
}

func (s *Server) textDocumentDidClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.Close(string(params.TextDocument.URI))
	return nil
}

func (s *Server) textDocumentDidSave(_ *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	s.fileChanged(uriToPath(string(params.TextDocument.URI)))
	return nil
}

func (s *Server) workspaceDidChangeWatchedFiles(_ *glsp.Context, params *protocol.DidChangeWatchedFilesParams) error {
	for _, change := range params.Changes {
		s.fileChanged(uriToPath(change.URI))
	}
	return nil
}

// publishDiagnostics sends the current diagnostics for an open config file.
// Other documents never carry diagnostics.
func (s *Server) publishDiagnostics(ctx *glsp.Context, uri string) {
	if ctx == nil || !isConfigFile(uriToPath(uri)) {
		return
	}
	result := s.docs.Result(uri)
	if result == nil {
		return
	}
	diags := result.Diagnostics
	if diags == nil {
		diags = []protocol.Diagnostic{}
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentUri(uri),
		Diagnostics: diags,
	})
}

// fileChanged resyncs when path is the project's settings file or its
// accentsync config. A changed config is reloaded first.
func (s *Server) fileChanged(path string) {
	s.mu.Lock()
	root, engine := s.root, s.engine
	s.mu.Unlock()
	if root == "" || path == "" {
		return
	}

	switch {
	case samePath(path, filepath.Join(root, config.FileName)):
		s.reload()
		s.sync("config saved")
	case engine != nil && samePath(path, engine.SettingsPath()):
		s.sync("settings saved")
	}
}

// reload rebuilds the engine from the project config. An invalid config
// disables syncing until it is fixed.
func (s *Server) reload() {
	s.mu.Lock()
	defer s.mu.Unlock()

	engine, err := accentsync.New(s.root, s.configDir)
	if err != nil {
		log.Errorf("loading %s: %s", filepath.Join(s.root, config.FileName), err)
		s.engine = nil
		return
	}
	s.engine = engine
}

// sync runs one pass. Failures are logged, never returned to the client.
func (s *Server) sync(reason string) {
	s.mu.Lock()
	engine := s.engine
	s.mu.Unlock()
	if engine == nil {
		return
	}

	log.Debugf("sync triggered: %s", reason)
	if _, err := engine.Run(); err != nil {
		log.Errorf("sync failed: %s", err)
	}
}

// amount is the lightness shift used for hover previews.
func (s *Server) amount() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		return color.DefaultAmount
	}
	return s.engine.Config.Amount
}

// uriToPath converts a file:// URI to a filesystem path. Other schemes yield "".
func uriToPath(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return ""
	}
	return filepath.FromSlash(u.Path)
}

func samePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
