package health

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"time"

	"secondmarket-backend/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// DBPinger is optional for the health check. Nil reports the database as
// disconnected.
type DBPinger interface {
	Ping() error
}

// Result is the /health/json payload.
type Result struct {
	Status       string               `json:"status"`
	Runtime      RuntimeInfo          `json:"runtime"`
	Traffic      TrafficInfo          `json:"traffic"`
	Dependencies map[string]DepStatus `json:"dependencies"`
}

type RuntimeInfo struct {
	UptimeSeconds int64  `json:"uptimeSeconds"`
	Goroutines    int    `json:"goroutines"`
	GoVersion     string `json:"goVersion"`
}

type TrafficInfo struct {
	TotalRequests   int64       `json:"totalRequests"`
	FailedCount     int64       `json:"failedCount"`
	AvgResponseTime interface{} `json:"avgResponseTime"`
	LastRequest     interface{} `json:"lastRequest"`
}

type DepStatus struct {
	Status string      `json:"status"`
	PingMs interface{} `json:"pingMs"`
}

var startTime = time.Now()

// Collect gathers dependency status and the traffic counters written by
// the health marker middleware.
func Collect(ctx context.Context, rdb *redis.Client, db DBPinger) Result {
	result := Result{Dependencies: make(map[string]DepStatus)}

	dbStatus := "disconnected"
	var dbPing interface{}
	if db != nil {
		start := time.Now()
		if err := db.Ping(); err == nil {
			dbStatus = "connected"
			dbPing = time.Since(start).Milliseconds()
		} else {
			dbStatus = "error"
		}
	}
	result.Dependencies["database"] = DepStatus{Status: dbStatus, PingMs: dbPing}

	redisStatus := "disconnected"
	var redisPing interface{}
	if rdb != nil {
		start := time.Now()
		if err := rdb.Ping(ctx).Err(); err == nil {
			redisStatus = "connected"
			redisPing = time.Since(start).Milliseconds()

			total, _ := rdb.Get(ctx, middleware.KeyReqTotal).Int64()
			fails, _ := rdb.Get(ctx, middleware.KeyReqErrors).Int64()
			resCount, _ := rdb.Get(ctx, middleware.KeyResCount).Int64()
			resTime, _ := rdb.Get(ctx, middleware.KeyResTime).Float64()
			result.Traffic.TotalRequests = total
			result.Traffic.FailedCount = fails
			if resCount > 0 {
				result.Traffic.AvgResponseTime = fmt.Sprintf("%.1f", resTime/float64(resCount))
			}
			if raw, err := rdb.Get(ctx, middleware.KeyLastReq).Bytes(); err == nil {
				var last map[string]interface{}
				if json.Unmarshal(raw, &last) == nil {
					result.Traffic.LastRequest = last
				}
			}
		} else {
			redisStatus = "error"
		}
	}
	result.Dependencies["redis"] = DepStatus{Status: redisStatus, PingMs: redisPing}

	result.Status = "ok"
	if dbStatus == "error" || redisStatus == "error" {
		result.Status = "degraded"
	}
	result.Runtime = RuntimeInfo{
		UptimeSeconds: int64(time.Since(startTime).Seconds()),
		Goroutines:    runtime.NumGoroutine(),
		GoVersion:     runtime.Version(),
	}
	return result
}
