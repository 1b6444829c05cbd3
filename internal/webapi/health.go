package webapi

import (
	"runtime"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
)

// health reports process and host vitals for monitoring.
func (s *WebServer) health(c echo.Context) error {
	info := map[string]interface{}{
		"status":     "ok",
		"app":        s.app.Config().System.Appid,
		"goroutines": runtime.NumGoroutine(),
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info["mem_used_percent"] = vm.UsedPercent
	}
	if uptime, err := host.Uptime(); err == nil {
		info["host_uptime_sec"] = uptime
	}
	return ok(c, info)
}
