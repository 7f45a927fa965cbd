package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// OK represents a successful operation.
var OK = Register(&Errno{
	Code:      0,
	HTTP:      http.StatusOK,
	GRPCCode:  codes.OK,
	MessageEN: "Success",
	MessageZH: "成功",
})

// Common errors shared by all services.
var (
	// ErrBadRequest indicates a malformed request.
	ErrBadRequest = Register(&Errno{
		Code:      MakeCode(ServiceCommon, CategoryRequest, 0),
		HTTP:      http.StatusBadRequest,
		GRPCCode:  codes.InvalidArgument,
		MessageEN: "Bad request",
		MessageZH: "请求错误",
	})

	// ErrInvalidParam indicates an invalid parameter.
	ErrInvalidParam = Register(&Errno{
		Code:      MakeCode(ServiceCommon, CategoryRequest, 1),
		HTTP:      http.StatusBadRequest,
		GRPCCode:  codes.InvalidArgument,
		MessageEN: "Invalid parameter",
		MessageZH: "参数无效",
	})

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = Register(&Errno{
		Code:      MakeCode(ServiceCommon, CategoryNotFound, 0),
		HTTP:      http.StatusNotFound,
		GRPCCode:  codes.NotFound,
		MessageEN: "Resource not found",
		MessageZH: "资源不存在",
	})

	// ErrInternal indicates an unexpected internal error.
	ErrInternal = Register(&Errno{
		Code:      MakeCode(ServiceCommon, CategoryInternal, 0),
		HTTP:      http.StatusInternalServerError,
		GRPCCode:  codes.Internal,
		MessageEN: "Internal server error",
		MessageZH: "服务器内部错误",
	})

	// ErrDatabase indicates a storage layer failure.
	ErrDatabase = Register(&Errno{
		Code:      MakeCode(ServiceCommon, CategoryDatabase, 0),
		HTTP:      http.StatusInternalServerError,
		GRPCCode:  codes.Internal,
		MessageEN: "Database error",
		MessageZH: "数据库错误",
	})

	// ErrTimeout indicates an upstream call exceeded its deadline.
	ErrTimeout = Register(&Errno{
		Code:      MakeCode(ServiceCommon, CategoryTimeout, 0),
		HTTP:      http.StatusGatewayTimeout,
		GRPCCode:  codes.DeadlineExceeded,
		MessageEN: "Request timeout",
		MessageZH: "请求超时",
	})
)

// GraphLens domain errors.
var (
	// ErrUnsupportedFormat rejects uploads whose content is empty or whose
	// extension is not plain text or Markdown. Raised before any side effect.
	ErrUnsupportedFormat = Register(&Errno{
		Code:      MakeCode(ServiceGraphLens, CategoryRequest, 0),
		HTTP:      http.StatusBadRequest,
		GRPCCode:  codes.InvalidArgument,
		MessageEN: "Unsupported document format",
		MessageZH: "不支持的文档格式",
	})

	// ErrEmptyTenant rejects requests without a usable tenant or user ID.
	ErrEmptyTenant = Register(&Errno{
		Code:      MakeCode(ServiceGraphLens, CategoryRequest, 1),
		HTTP:      http.StatusBadRequest,
		GRPCCode:  codes.InvalidArgument,
		MessageEN: "Tenant or user identifier is empty",
		MessageZH: "租户或用户标识为空",
	})

	// ErrDocumentNotFound indicates a registry row does not exist.
	ErrDocumentNotFound = Register(&Errno{
		Code:      MakeCode(ServiceGraphLens, CategoryNotFound, 0),
		HTTP:      http.StatusNotFound,
		GRPCCode:  codes.NotFound,
		MessageEN: "Document not found",
		MessageZH: "文档不存在",
	})

	// ErrIndexingFailed indicates the knowledge store rejected or failed an
	// index call. The ingestion is recorded as failed and retryable by
	// re-uploading the same content.
	ErrIndexingFailed = Register(&Errno{
		Code:      MakeCode(ServiceGraphLens, CategoryUpstream, 0),
		HTTP:      http.StatusBadGateway,
		GRPCCode:  codes.Unavailable,
		MessageEN: "Document indexing failed",
		MessageZH: "文档索引失败",
	})

	// ErrRetrievalFailed marks one failed retrieval branch. It never fails the
	// whole query; the orchestrator degrades that branch to an empty result.
	ErrRetrievalFailed = Register(&Errno{
		Code:      MakeCode(ServiceGraphLens, CategoryUpstream, 1),
		HTTP:      http.StatusBadGateway,
		GRPCCode:  codes.Unavailable,
		MessageEN: "Retrieval branch failed",
		MessageZH: "检索分支失败",
	})

	// ErrResetFailed indicates the knowledge store reset call failed; registry
	// records are left intact.
	ErrResetFailed = Register(&Errno{
		Code:      MakeCode(ServiceGraphLens, CategoryUpstream, 2),
		HTTP:      http.StatusBadGateway,
		GRPCCode:  codes.Unavailable,
		MessageEN: "Tenant reset failed",
		MessageZH: "租户重置失败",
	})

	// ErrPartialReset indicates graph/vector state was cleared but some
	// registry rows could not be deleted yet. Cleanup is retried in the
	// background until it completes.
	ErrPartialReset = Register(&Errno{
		Code:      MakeCode(ServiceGraphLens, CategoryInternal, 0),
		HTTP:      http.StatusInternalServerError,
		GRPCCode:  codes.Internal,
		MessageEN: "Tenant reset incomplete, registry cleanup pending",
		MessageZH: "租户重置未完成，注册表清理进行中",
	})

	// ErrRegistryUnavailable indicates the content registry backend failed.
	ErrRegistryUnavailable = Register(&Errno{
		Code:      MakeCode(ServiceGraphLens, CategoryDatabase, 0),
		HTTP:      http.StatusInternalServerError,
		GRPCCode:  codes.Internal,
		MessageEN: "Content registry unavailable",
		MessageZH: "内容注册表不可用",
	})
)
