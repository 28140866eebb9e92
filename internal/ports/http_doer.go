package ports

import "net/http"

// HTTPDoer — транспорт исходящих запросов (*http.Client удовлетворяет контракту).
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}
