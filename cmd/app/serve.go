package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/0x0FACED/go-sweepline/pkg/config"
	"github.com/0x0FACED/go-sweepline/pkg/export"
	"github.com/0x0FACED/go-sweepline/pkg/logger"
	"github.com/0x0FACED/go-sweepline/static"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

func newServeCmd(app *appCtx) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [--addr=<host:port>]",
		Short: "страница просмотра диаграммы",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = app.cfg.Server.Addr
			}

			v := &viewer{defaults: app.cfg.Diagram}
			mux := http.NewServeMux()
			mux.HandleFunc("/", v.diagramHandler)
			mux.HandleFunc("/diagram.geojson", v.geojsonHandler)

			ctx := cmd.Context()
			srv := &http.Server{
				Addr:    addr,
				Handler: mux,
				// отмена команды доходит до построений в обработчиках
				BaseContext: func(net.Listener) context.Context { return ctx },
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Сервер запущен на", addr)
			if err := serveUntilDone(ctx, srv); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Сервер остановлен")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "адрес HTTP-сервера (по умолчанию из настроек)")
	return cmd
}

const shutdownTimeout = 5 * time.Second

// serveUntilDone обслуживает запросы, пока не отменен ctx, затем останавливает сервер,
// давая активным запросам shutdownTimeout на завершение.
func serveUntilDone(ctx context.Context, srv *http.Server) error {
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.Wrap(err, "listen and serve")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "listen and serve")
	}
	return nil
}

type viewer struct {
	defaults config.Diagram
}

// parseParams накладывает значения формы или строки запроса на значения по умолчанию.
func (v *viewer) parseParams(r *http.Request) (config.Diagram, error) {
	p := v.defaults
	if err := r.ParseForm(); err != nil {
		return p, errors.Wrap(err, "parsing form")
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"width", &p.Width},
		{"height", &p.Height},
		{"sites", &p.Sites},
	}
	for _, f := range ints {
		raw := r.FormValue(f.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return p, errors.Wrapf(err, "field %s", f.name)
		}
		*f.dst = n
	}
	if raw := r.FormValue("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return p, errors.Wrap(err, "field seed")
		}
		p.Seed = seed
	}
	if r.Method == http.MethodPost {
		// неотмеченный чекбокс в форму не попадает
		p.Random = r.FormValue("random") == "true"
	} else if raw := r.FormValue("random"); raw != "" {
		p.Random = raw == "true"
	}
	if raw := r.FormValue("debug"); raw != "" {
		p.Debug = raw == "true"
	}

	return p, p.Validate()
}

func newRequestLogger(p config.Diagram) *logger.ZapLogger {
	level := zapcore.InfoLevel
	if p.Debug {
		level = zapcore.DebugLevel
	}
	return logger.New(level)
}

// http обработчик страницы с диаграммой и формой для ввода данных
func (v *viewer) diagramHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	p, err := v.parseParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log := newRequestLogger(p)
	defer log.ClearLogs()

	res, err := buildDiagram(r.Context(), p, log)
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	scatter := diagramToEcharts(res)

	fmt.Fprintln(w, static.Part1)

	if err := scatter.Render(w); err != nil {
		fmt.Println("Ошибка рендеринга диаграммы:", err)
	}

	fmt.Fprintln(w, static.Part2)

	// Вставляем логи в HTML
	fmt.Fprintln(w, log.HTML())

	fmt.Fprintln(w, static.Part3)
}

// geojsonHandler отдает ту же диаграмму в GeoJSON; параметры - в строке запроса.
func (v *viewer) geojsonHandler(w http.ResponseWriter, r *http.Request) {
	p, err := v.parseParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := buildDiagram(r.Context(), p, logger.NewNop())
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data, err := export.GeoJSON(res.diagram, res.segments)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.Header().Set("Content-Disposition", `attachment; filename="diagram.geojson"`)
	_, _ = w.Write(data)
}
