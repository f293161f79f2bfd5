// Package api はHTTP APIで共有されるワイヤ型を定義します。
package api

// ErrorResponse はエラーレスポンスの共通形式です。
type ErrorResponse struct {
	Error string `json:"error"`
}
