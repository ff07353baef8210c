package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-logr/logr"
)

type scheduleRequest struct {
	Plan     string    `json:"plan"`
	K        int       `json:"k"`
	Revenues []float64 `json:"revenues"`
}

type scheduleResponse struct {
	Plan           string            `json:"plan"`
	Schedule       Schedule[float64] `json:"schedule"`
	Off            []int             `json:"off"`
	IntervalProfit float64           `json:"interval_profit"`
}

// Largest POST /schedule body accepted.
const maxScheduleBody = 1 << 20

func newMux(log logr.Logger, b *Broker, ps *Planners) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /schedule", func(w http.ResponseWriter, r *http.Request) {
		var req scheduleRequest
		r.Body = http.MaxBytesReader(w, r.Body, maxScheduleBody)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			status := http.StatusBadRequest
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			http.Error(w, fmt.Sprintf("decoding request: %v", err), status)
			return
		}
		if req.Plan == "" {
			req.Plan = "default"
		}

		resp, err := plan(r, ps, req)
		if errors.Is(err, ErrInvalidInterval) || errors.Is(err, ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		} else if err != nil {
			log.Error(err, "scheduling failed", "plan", req.Plan)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		log.V(1).Info("scheduled", "plan", req.Plan, "days", len(req.Revenues), "k", req.K, "profit", resp.Schedule.Profit)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.Error(err, "JSON encoding failed")
		}
	})

	mux.HandleFunc("GET /planner", func(w http.ResponseWriter, r *http.Request) {
		var v any = ps
		if name := r.URL.Query().Get("plan"); name != "" {
			p := ps.Get(name)
			if p == nil {
				http.Error(w, fmt.Sprintf("no plan %q", name), http.StatusNotFound)
				return
			}
			v = p
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(v); err != nil {
			log.Error(err, "JSON encoding failed")
		}
	})

	// SSE endpoint
	mux.HandleFunc("GET /events", func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("plan")

		// Mandatory SSE headers
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("X-Accel-Buffering", "no")

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		// Tell client to retry in 3s if disconnected
		if _, err := fmt.Fprint(w, "retry: 3000\n\n"); err != nil {
			return
		}

		// Subscribe before the snapshot so nothing decided in between is lost.
		ch, unsubscribe := b.Subscribe(name)
		defer unsubscribe()

		var snapshot any = ps
		if name != "" {
			snapshot = ps.Get(name)
		}
		if data, err := json.Marshal(snapshot); err != nil {
			log.Error(err, "JSON encoding failed")
		} else if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return
		}
		flusher.Flush()

		// Heartbeats to keep connections alive through proxies
		heartbeat := time.NewTicker(15 * time.Second)
		defer heartbeat.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return
			case <-heartbeat.C:
				if _, err := fmt.Fprint(w, ": heartbeat\n\n"); err != nil {
					return
				}
				flusher.Flush()
			case msg, ok := <-ch:
				if !ok {
					return
				}
				data, err := json.Marshal(msg)
				if err != nil {
					log.Error(err, "JSON encoding failed")
					continue
				}
				if _, err := fmt.Fprintf(w, "event: decision\ndata: %s\n\n", data); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	})

	return mux
}

func plan(r *http.Request, ps *Planners, req scheduleRequest) (scheduleResponse, error) {
	schedule, err := MaximizeProfits(req.Revenues, req.K)
	if err != nil {
		return scheduleResponse{}, err
	}
	interval, err := MaxIntervalProfit(req.Revenues, req.K)
	if err != nil {
		return scheduleResponse{}, err
	}
	if _, err := ps.Run(r.Context(), req.Plan, req.K, req.Revenues); err != nil {
		return scheduleResponse{}, err
	}

	return scheduleResponse{
		Plan:           req.Plan,
		Schedule:       schedule,
		Off:            schedule.OffDays(),
		IntervalProfit: interval,
	}, nil
}

func webserver(addr string, log logr.Logger, b *Broker, ps *Planners) error {
	log.Info("HTTP server listening", "addr", addr)
	return http.ListenAndServe(addr, newMux(log, b, ps))
}
