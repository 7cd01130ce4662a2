package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	mandel "github.com/marben/mandel_bands"
	"github.com/marben/mandel_bands/encode"
)

// webServer serves the websocket render endpoint along with plain HTTP renders.
// origins lists the cross-origin hosts browsers may open the websocket from.
func webServer(rs *renderService, addr string, origins []string) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           newMux(rs, origins),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("listening on http://%s", addr)
	return srv
}

func newMux(rs *renderService, origins []string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", websocketHandler(rs, origins))
	mux.HandleFunc("GET /render", renderHandler(rs))
	mux.HandleFunc("GET /regions", regionsHandler)
	return mux
}

// websocketHandler answers every RenderRequest read from the connection
// with a RenderReply, followed by the encoded image when the render succeeded.
// Same-origin and non-browser clients are always accepted; other browser
// origins must match one of the origins patterns (path.Match on the host).
func websocketHandler(rs *renderService, origins []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: origins,
		})
		if err != nil {
			log.Println(err)
			return
		}
		defer c.CloseNow()

		ctx := r.Context()
		log.Printf("got connection from: %s", r.RemoteAddr)
		for {
			var req mandel.RenderRequest
			if err := wsjson.Read(ctx, c, &req); err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				default:
					log.Printf("read request from %s: %v", r.RemoteAddr, err)
				}
				return
			}

			reply := mandel.RenderReply{Width: req.Width, Height: req.Height, Format: req.Format}
			if reply.Format == "" {
				reply.Format = encode.DefaultFormat
			}
			img, err := rs.render(ctx, req)
			if err != nil {
				log.Printf("render for %s: %v", r.RemoteAddr, err)
				reply.Error = err.Error()
				if err := wsjson.Write(ctx, c, reply); err != nil {
					log.Printf("write reply to %s: %v", r.RemoteAddr, err)
					return
				}
				continue
			}

			reply.Size = len(img)
			if err := wsjson.Write(ctx, c, reply); err != nil {
				log.Printf("write reply to %s: %v", r.RemoteAddr, err)
				return
			}
			if err := c.Write(ctx, websocket.MessageBinary, img); err != nil {
				log.Printf("write image to %s: %v", r.RemoteAddr, err)
				return
			}
		}
	}
}

// renderHandler renders the image described by the query string:
//
//	/render?size=800x600&ul=-1.20,0.35&lr=-1,0.2&format=png
//	/render?size=800x600&region=seahorse-valley&limit=1000&workers=16
func renderHandler(rs *renderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := parseQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		img, err := rs.render(r.Context(), req)
		switch {
		case errors.Is(err, mandel.ErrInvalidInput), errors.Is(err, encode.ErrUnknownFormat):
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		case err != nil:
			log.Printf("render for %s: %v", r.RemoteAddr, err)
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", encode.ContentType(req.Format))
		w.Header().Set("Content-Length", strconv.Itoa(len(img)))
		if _, err := w.Write(img); err != nil {
			log.Printf("write image to %s: %v", r.RemoteAddr, err)
		}
	}
}

func parseQuery(r *http.Request) (mandel.RenderRequest, error) {
	q := r.URL.Query()
	req := mandel.RenderRequest{Format: q.Get("format")}

	b, err := mandel.ParseBounds(q.Get("size"))
	if err != nil {
		return req, err
	}
	req.Width, req.Height = b.Width, b.Height

	if name := q.Get("region"); name != "" {
		req.Region, err = mandel.LookupRegion(name)
	} else {
		req.Region, err = mandel.ParseRegion(q.Get("ul"), q.Get("lr"))
	}
	if err != nil {
		return req, err
	}

	if req.Limit, err = intParam(q.Get("limit")); err != nil {
		return req, err
	}
	if req.Workers, err = intParam(q.Get("workers")); err != nil {
		return req, err
	}
	return req, nil
}

// intParam parses an optional integer; empty means zero.
func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", mandel.ErrInvalidInput, err)
	}
	return n, nil
}

func regionsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(mandel.Landmarks); err != nil {
		log.Printf("write regions: %v", err)
	}
}
