package response

type ResponseCode int

// 统一业务代码
const (
	Success = 100
	// Accepted 操作已进入待审批队列
	Accepted = 202
)

type Response struct {
	Message string       `json:"message"`
	Code    ResponseCode `json:"code"`
	Data    any          `json:"data"`
}

func SuccessResponse(data any) Response {
	return Response{
		Message: "success",
		Code:    Success,
		Data:    data,
	}
}

// DeferredResponse 低权限操作被转为待审批请求时的响应
func DeferredResponse(data any) Response {
	return Response{
		Message: "queued for approval",
		Code:    Accepted,
		Data:    data,
	}
}

func ErrorResponse(code ResponseCode, msg string) Response {
	return Response{
		Message: msg,
		Code:    code,
		Data:    nil,
	}
}
