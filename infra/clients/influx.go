package clients

import (
	"context"
	"fmt"
	"net/http"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/clientry/clientry/core/factory"
	"github.com/clientry/clientry/core/logger"
)

func init() {
	factory.Clients.MustRegister("clients/influx", func(bc factory.BuildContext) (any, error) {
		var cfg InfluxConfig
		if err := factory.Decode(bc.Params, &cfg); err != nil {
			return nil, err
		}
		return NewInfluxClient(bc.Name, cfg, bc.Log)
	})
}

// InfluxConfig defines the construction parameters of the InfluxDB writer.
type InfluxConfig struct {
	URL       string `json:"url"`
	Token     string `json:"token"`
	Org       string `json:"org"`
	Bucket    string `json:"bucket"`
	TimeoutMS int    `json:"timeout_ms"`
}

// InfluxClient writes points to one bucket using the official client.
type InfluxClient struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxClient validates cfg and builds the writer. No connection is
// made until the first write.
func NewInfluxClient(name string, cfg InfluxConfig, log logger.Logger) (*InfluxClient, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("influx client %s: url is required", name)
	}
	if cfg.Org == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("influx client %s: org and bucket are required", name)
	}
	timeout := 5 * time.Second
	if cfg.TimeoutMS > 0 {
		timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	client := influxdb2.NewClientWithOptions(cfg.URL, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: timeout}))
	return &InfluxClient{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      log,
	}, nil
}

// WritePoint writes a single point.
func (c *InfluxClient) WritePoint(ctx context.Context, p *write.Point) error {
	return c.writeAPI.WritePoint(ctx, p)
}

// WriteRecord writes raw line-protocol records.
func (c *InfluxClient) WriteRecord(ctx context.Context, lines ...string) error {
	return c.writeAPI.WriteRecord(ctx, lines...)
}

// Close flushes and shuts down the underlying client.
func (c *InfluxClient) Close() {
	c.client.Close()
}
