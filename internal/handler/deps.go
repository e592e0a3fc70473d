package handler

import (
	"SAFE_AISafetySuite/internal/dispatch"
	"SAFE_AISafetySuite/internal/registry"
	"SAFE_AISafetySuite/internal/ws"
)

// 핸들러 공유 의존성, main에서 1회 주입
var (
	moduleRegistry *registry.Registry
	dispatcher     *dispatch.Dispatcher
	eventHub       *ws.Hub
)

func Init(r *registry.Registry, d *dispatch.Dispatcher, h *ws.Hub) {
	moduleRegistry = r
	dispatcher = d
	eventHub = h
}
