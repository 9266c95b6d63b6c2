package lib

// ProgressCallback 进度回调函数类型，consumed 为已发送字节数
type ProgressCallback func(consumed, total int64)
