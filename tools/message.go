package tools

import (
	"context"
	"errors"
	"fmt"
)

// Kind identifies the payload of a Message.
type Kind string

// Message kinds.
const (
	KindText Kind = "text"
	KindJSON Kind = "json"
	KindBlob Kind = "blob"
)

// Meta keys attached to blob messages.
const (
	MetaMIMEType = "mime_type"
	MetaFilename = "filename"
)

// ErrInvalidParam indicates the host passed a parameter of an unsupported type.
var ErrInvalidParam = errors.New("invalid tool parameter")

// Message is one output item of a tool invocation.
type Message struct {
	Kind Kind
	Text string
	JSON map[string]any
	Blob []byte
	Meta map[string]string
}

// TextMessage returns a text message.
func TextMessage(text string) Message {
	return Message{Kind: KindText, Text: text}
}

// JSONMessage returns a JSON message.
func JSONMessage(v map[string]any) Message {
	return Message{Kind: KindJSON, JSON: v}
}

// BlobMessage returns a binary message tagged with its MIME type and filename.
func BlobMessage(data []byte, mimeType, filename string) Message {
	return Message{
		Kind: KindBlob,
		Blob: data,
		Meta: map[string]string{MetaMIMEType: mimeType, MetaFilename: filename},
	}
}

// Tool is a host-invocable operation.
type Tool interface {
	Invoke(ctx context.Context, params map[string]any) ([]Message, error)
}

// File is an uploaded file as delivered by the host.
type File struct {
	Filename string
	MIMEType string
	Blob     []byte
}

// stringParam returns params[key] as a string. Missing and nil values are "".
func stringParam(params map[string]any, key string) (string, error) {
	switch v := params[key].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("%w: %q must be a string, got %T", ErrInvalidParam, key, v)
	}
}

// blobParam returns the bytes of a file parameter.
func blobParam(params map[string]any, key string) ([]byte, error) {
	switch v := params[key].(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	case File:
		return v.Blob, nil
	case *File:
		if v == nil {
			return nil, nil
		}
		return v.Blob, nil
	default:
		return nil, fmt.Errorf("%w: %q must be a file, got %T", ErrInvalidParam, key, v)
	}
}

// floatParam returns params[key] as a float. Missing values are 0.
func floatParam(params map[string]any, key string) (float64, error) {
	switch v := params[key].(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%w: %q must be a number, got %T", ErrInvalidParam, key, v)
	}
}
