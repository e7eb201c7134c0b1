package hitbtc

import (
	"encoding/base64"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"github.com/vitos/crypto_exchange_adapter/internal/domain"
)

// Params are request parameters. Keys named in an endpoint path are
// substituted into it; the rest become the query string or JSON body.
type Params map[string]string

// Signer builds request descriptors. HitBTC authenticates private calls with
// a static Basic header, so there is no nonce or per-request signature.
type Signer struct {
	exchange  string
	baseURL   string
	version   string
	apiKey    string
	apiSecret string
}

func NewSigner(exchange, baseURL, version, apiKey, apiSecret string) *Signer {
	return &Signer{
		exchange:  exchange,
		baseURL:   strings.TrimRight(baseURL, "/"),
		version:   version,
		apiKey:    apiKey,
		apiSecret: apiSecret,
	}
}

func (s *Signer) HasCredentials() bool {
	return s.apiKey != "" && s.apiSecret != ""
}

func (s *Signer) Sign(ep Endpoint, params Params) (*domain.Request, error) {
	path, query := implodeParams(ep.Path, params)
	u := "/api/" + s.version + "/"

	req := &domain.Request{Method: ep.Method}

	if ep.API == Public {
		u += string(Public) + "/" + path
		if len(query) > 0 {
			u += "?" + query.Encode()
		}
		req.URL = s.baseURL + u
		return req, nil
	}

	if !s.HasCredentials() {
		return nil, domain.NewError(domain.ErrAuthentication, s.exchange, "requires apiKey and secret credentials")
	}

	u += path
	if ep.Method == "GET" {
		if len(query) > 0 {
			u += "?" + query.Encode()
		}
	} else if len(query) > 0 {
		body := make(map[string]string, len(query))
		for k := range query {
			body[k] = query.Get(k)
		}
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, domain.WrapError(domain.ErrExchange, s.exchange, err)
		}
		req.Body = payload
	}

	auth := base64.StdEncoding.EncodeToString([]byte(s.apiKey + ":" + s.apiSecret))
	req.Headers = map[string]string{
		"Authorization": "Basic " + auth,
		"Content-Type":  "application/json",
	}
	req.URL = s.baseURL + u
	return req, nil
}

// implodeParams fills {name} placeholders and returns the unused params.
func implodeParams(path string, params Params) (string, url.Values) {
	query := url.Values{}
	for k, v := range params {
		placeholder := "{" + k + "}"
		if strings.Contains(path, placeholder) {
			path = strings.ReplaceAll(path, placeholder, url.PathEscape(v))
			continue
		}
		query.Set(k, v)
	}
	return path, query
}
