//go:generate mockgen -source=../id_generator.go    -destination=./mock_id_generator.go    -package=mocks
//go:generate mockgen -source=../order_forwarder.go -destination=./mock_order_forwarder.go -package=mocks
//go:generate mockgen -source=../request_signer.go  -destination=./mock_request_signer.go  -package=mocks
//go:generate mockgen -source=../http_doer.go       -destination=./mock_http_doer.go       -package=mocks
//go:generate mockgen -source=../order_service.go   -destination=./mock_order_service.go   -package=mocks
//go:generate mockgen -source=../validator.go        -destination=./mock_validator.go        -package=mocks

package mocks
