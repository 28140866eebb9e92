// Package boundary — граница авторизации внутреннего API: ARN ресурса,
// resource/identity-политики, их вычисление и локальная проверка SigV4.
//
// В Lambda границу обеспечивает платформа (API Gateway + IAM); пакет нужен
// для генерации политик при развёртывании и для локального режима http,
// где Guard воспроизводит те же решения перед обработчиком.
package boundary

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ActionInvoke — единственное действие, которым управляет граница.
const ActionInvoke = "execute-api:Invoke"

var (
	// ErrInvalidARN — строка не похожа на ARN execute-api или IAM.
	ErrInvalidARN = errors.New("invalid arn")

	accountRe = regexp.MustCompile(`^[0-9]{12}$`)
)

// Boundary — кто (аккаунт) и что (метод + путь) может вызывать внутренний API.
type Boundary struct {
	Region            string
	InternalAccountID string // владелец внутреннего API
	ExternalAccountID string // единственный разрешённый вызывающий
	RestAPIID         string
	Stage             string
	Method            string
	Path              string
}

// Validate — все поля заданы, аккаунты из 12 цифр, путь абсолютный.
func (b Boundary) Validate() error {
	switch {
	case b.Region == "", b.RestAPIID == "", b.Stage == "", b.Method == "":
		return fmt.Errorf("%w: region, rest api id, stage and method are required", ErrInvalidARN)
	case !accountRe.MatchString(b.InternalAccountID):
		return fmt.Errorf("%w: internal account %q", ErrInvalidARN, b.InternalAccountID)
	case !accountRe.MatchString(b.ExternalAccountID):
		return fmt.Errorf("%w: external account %q", ErrInvalidARN, b.ExternalAccountID)
	case !strings.HasPrefix(b.Path, "/"):
		return fmt.Errorf("%w: path %q must start with /", ErrInvalidARN, b.Path)
	}
	return nil
}

// ResourceARN — ARN единственного разрешённого маршрута.
func (b Boundary) ResourceARN() string {
	return ExecuteAPIARN(b.Region, b.InternalAccountID, b.RestAPIID, b.Stage, b.Method, b.Path)
}

// RouteARN — ARN произвольного маршрута того же API (для проверки чужих путей).
func (b Boundary) RouteARN(method, path string) string {
	return ExecuteAPIARN(b.Region, b.InternalAccountID, b.RestAPIID, b.Stage, method, path)
}

// ExecuteAPIARN — arn:aws:execute-api:<region>:<account>:<apiId>/<stage>/<METHOD><path>.
func ExecuteAPIARN(region, account, apiID, stage, method, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return fmt.Sprintf("arn:aws:execute-api:%s:%s:%s/%s/%s%s",
		region, account, apiID, stage, strings.ToUpper(method), path)
}

// AccountRootARN — arn:aws:iam::<account>:root, принципал «весь аккаунт».
func AccountRootARN(account string) string {
	return "arn:aws:iam::" + account + ":root"
}

// AccountFromARN — номер аккаунта из ARN (пятое поле) или сам номер.
func AccountFromARN(arn string) (string, error) {
	if accountRe.MatchString(arn) {
		return arn, nil
	}
	parts := strings.SplitN(arn, ":", 6)
	if len(parts) != 6 || parts[0] != "arn" {
		return "", fmt.Errorf("%w: %q", ErrInvalidARN, arn)
	}
	if !accountRe.MatchString(parts[4]) {
		return "", fmt.Errorf("%w: no account in %q", ErrInvalidARN, arn)
	}
	return parts[4], nil
}
