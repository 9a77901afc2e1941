package protocol

import (
	"encoding/binary"
	"fmt"

	amqperrors "github.com/maxpert/amqp-go-client/errors"
)

// MethodKey combines a class and method id into the single registry key
// used on the wire: (class << 16) | method.
func MethodKey(classID, methodID uint16) uint32 {
	return uint32(classID)<<16 | uint32(methodID)
}

// SplitMethodKey is the inverse of MethodKey.
func SplitMethodKey(id uint32) (classID, methodID uint16) {
	return uint16(id >> 16), uint16(id & 0xFFFF)
}

// RawMethod is the payload of a method frame before argument decoding.
// Args borrows the frame payload.
type RawMethod struct {
	ID   uint32
	Args []byte
}

// ClassID returns the class half of the method id
func (r RawMethod) ClassID() uint16 {
	classID, _ := SplitMethodKey(r.ID)
	return classID
}

// MethodID returns the method half of the method id
func (r RawMethod) MethodID() uint16 {
	_, methodID := SplitMethodKey(r.ID)
	return methodID
}

// ParseMethodRecord splits a method frame payload into its id and arguments.
// Format: (2-byte class) + (2-byte method) + arguments
func ParseMethodRecord(payload []byte) (RawMethod, error) {
	if len(payload) < 4 {
		return RawMethod{}, amqperrors.NewFrameError(fmt.Sprintf("method frame payload of %d bytes is too short", len(payload)), FrameMethod)
	}
	return RawMethod{
		ID:   binary.BigEndian.Uint32(payload[0:4]),
		Args: payload[4:],
	}, nil
}

// RawHeader is the payload of a content header frame before property decoding.
// Properties borrows the frame payload.
type RawHeader struct {
	ClassID       uint16
	Weight        uint16
	BodySize      uint64
	PropertyFlags uint16
	Properties    []byte
}

// ParseHeaderRecord splits a content header frame payload.
// Format: (2-byte class) + (2-byte weight) + (8-byte body size) + (2-byte flags) + properties
func ParseHeaderRecord(payload []byte) (RawHeader, error) {
	if len(payload) < 14 {
		return RawHeader{}, amqperrors.NewFrameError(fmt.Sprintf("content header payload of %d bytes is too short", len(payload)), FrameHeader)
	}
	return RawHeader{
		ClassID:       binary.BigEndian.Uint16(payload[0:2]),
		Weight:        binary.BigEndian.Uint16(payload[2:4]),
		BodySize:      binary.BigEndian.Uint64(payload[4:12]),
		PropertyFlags: binary.BigEndian.Uint16(payload[12:14]),
		Properties:    payload[14:],
	}, nil
}
