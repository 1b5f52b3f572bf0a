package catalog

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/cabinext/cabinext/pkg/cache"
	"github.com/cabinext/cabinext/pkg/errors"
	"github.com/cabinext/cabinext/pkg/httputil"
	"github.com/cabinext/cabinext/pkg/layout"
	"github.com/cabinext/cabinext/pkg/observability"
	"github.com/cabinext/cabinext/pkg/room"
)

// Defaults for [Config].
const (
	DefaultBaseURL  = "http://127.0.0.1:8000/api"
	DefaultTimeout  = 10 * time.Second
	DefaultCacheTTL = 24 * time.Hour

	// RequestIDHeader carries a per-request UUID to the catalog service.
	RequestIDHeader = "X-Request-ID"

	maxResponseBytes = 4 << 20
)

// Config configures a [Client]. Zero values select the defaults.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	Cache    cache.Cache // nil disables caching
	CacheTTL time.Duration
	Keyer    cache.Keyer
	Headers  map[string]string
	Logger   *log.Logger

	// Attempts and RetryDelay control retries of transient failures.
	Attempts   int
	RetryDelay time.Duration
}

// Client calls the catalog service.
type Client struct {
	baseURL    string
	http       *http.Client
	cache      *httputil.JSONCache
	keyer      cache.Keyer
	headers    map[string]string
	logger     *log.Logger
	attempts   int
	retryDelay time.Duration
}

// NewClient creates a Client. It fails only if BaseURL is not an absolute
// http(s) URL.
func NewClient(cfg Config) (*Client, error) {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "invalid catalog URL %q", base)
	}

	c := &Client{
		baseURL:    strings.TrimRight(base, "/"),
		http:       &http.Client{Timeout: cmp.Or(cfg.Timeout, DefaultTimeout)},
		keyer:      cfg.Keyer,
		headers:    cfg.Headers,
		logger:     cfg.Logger,
		attempts:   cfg.Attempts,
		retryDelay: cfg.RetryDelay,
	}
	if c.keyer == nil {
		c.keyer = cache.NewDefaultKeyer()
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.attempts <= 0 {
		c.attempts = httputil.DefaultAttempts
	}
	if c.retryDelay <= 0 {
		c.retryDelay = httputil.DefaultDelay
	}
	c.cache = httputil.NewJSONCache(cfg.Cache, cache.KeyTypeCatalog, cmp.Or(cfg.CacheTTL, DefaultCacheTTL)).
		WithRetry(c.attempts, c.retryDelay)
	return c, nil
}

// BaseURL returns the service root, without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// GenerateWall returns the ordered module lists for one wall.
// Results are served from the cache when possible; refresh forces a fetch.
func (c *Client) GenerateWall(ctx context.Context, o layout.Orientation, lengthUnits float64, refresh bool) (room.WallModules, error) {
	if !o.Valid() {
		return room.WallModules{}, errors.New(errors.ErrCodeInvalidOrientation, "unknown orientation %q", o)
	}
	if err := errors.ValidatePositive("wall length", lengthUnits); err != nil {
		return room.WallModules{}, err
	}

	key := c.keyer.CatalogKey(cache.CatalogKeyOpts{
		BaseURL:     c.baseURL,
		Orientation: string(o),
		LengthUnits: lengthUnits,
	})

	var resp WallResponse
	req := WallRequest{Width: lengthUnits, Orientation: string(o)}
	hit, err := c.cache.Cached(ctx, key, refresh, &resp, func() error {
		resp = WallResponse{}
		if err := c.post(ctx, "/generate_wall/", req, &resp); err != nil {
			return err
		}
		return resp.validate()
	})
	if err != nil {
		return room.WallModules{}, errors.Wrap(codeOf(err), err, "generate %s wall (%g)", o, lengthUnits)
	}

	c.logger.Debug("wall modules", "wall", o, "length", lengthUnits,
		"bases", len(resp.Cabinets.Bases), "uppers", len(resp.Cabinets.Uppers), "cached", hit)
	return resp.modules(), nil
}

// PlaceCabinet asks the service to place one cabinet at (x, y). It is not
// cached.
func (c *Client) PlaceCabinet(ctx context.Context, req PlaceRequest) (PlacedCabinet, error) {
	if err := req.validate(); err != nil {
		return PlacedCabinet{}, err
	}

	var resp PlaceResponse
	err := httputil.Retry(ctx, c.attempts, c.retryDelay, func() error {
		resp = PlaceResponse{}
		if err := c.post(ctx, "/place_cabinet/", req, &resp); err != nil {
			return err
		}
		return resp.validate()
	})
	if err != nil {
		return PlacedCabinet{}, errors.Wrap(codeOf(err), err, "place cabinet %s", req.Cabinet.Name)
	}
	return *resp.PlacedCabinet, nil
}

func (c *Client) post(ctx context.Context, path string, body, v any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode request")
	}

	endpoint := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, val := range c.headers {
		req.Header.Set(k, val)
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)

	hooks := observability.HTTP()
	host, urlPath := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, http.MethodPost, host, urlPath)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, http.MethodPost, host, urlPath, err)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		code := errors.ErrCodeNetwork
		if isTimeout(err) {
			code = errors.ErrCodeTimeout
		}
		return httputil.Retryable(errors.Wrap(code, err, "POST %s", path))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, http.MethodPost, host, urlPath, resp.StatusCode, time.Since(start))
	c.logger.Debug("catalog response", "path", path, "status", resp.StatusCode, "request_id", reqID)

	if err := checkStatus(resp); err != nil {
		return err
	}

	dec := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes))
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidResponse, err, "decode %s response", path)
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "catalog endpoint not found (status 404)")
	case httputil.RetryableStatus(code):
		return httputil.Retryable(errors.New(errors.ErrCodeNetwork, "catalog returned status %d", code))
	case code >= 400 && code < 500:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.New(errors.ErrCodeInvalidInput, "catalog rejected request (status %d): %s",
			code, strings.TrimSpace(string(msg)))
	default:
		return errors.New(errors.ErrCodeNetwork, "unexpected catalog status %d", code)
	}
}

func isTimeout(err error) bool {
	var ne net.Error
	return stderrors.As(err, &ne) && ne.Timeout()
}

// codeOf picks the code for a failed call: the code the failure already
// carries, TIMEOUT for an expired deadline, NETWORK_ERROR otherwise.
func codeOf(err error) errors.Code {
	if code := errors.GetCode(err); code != "" {
		return code
	}
	if stderrors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		return errors.ErrCodeTimeout
	}
	return errors.ErrCodeNetwork
}

// String implements fmt.Stringer for logging.
func (c *Client) String() string { return fmt.Sprintf("catalog(%s)", c.baseURL) }
