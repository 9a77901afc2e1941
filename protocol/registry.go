package protocol

import (
	"fmt"

	amqperrors "github.com/maxpert/amqp-go-client/errors"
)

// methodRegistry maps the id of every method a broker may send to a client
// to a constructor for its empty value. It is never written after package
// initialisation, so lookups need no locking.
var methodRegistry = map[uint32]func() IncomingMethod{
	MethodKey(ClassChannel, ChannelOpenOK):  func() IncomingMethod { return &ChannelOpenOKMethod{} },
	MethodKey(ClassChannel, ChannelClose):   func() IncomingMethod { return &ChannelCloseMethod{} },
	MethodKey(ClassChannel, ChannelCloseOK): func() IncomingMethod { return &ChannelCloseOKMethod{} },

	MethodKey(ClassExchange, ExchangeDeclareOK): func() IncomingMethod { return &ExchangeDeclareOKMethod{} },
	MethodKey(ClassExchange, ExchangeDeleteOK):  func() IncomingMethod { return &ExchangeDeleteOKMethod{} },

	MethodKey(ClassQueue, QueueDeclareOK): func() IncomingMethod { return &QueueDeclareOKMethod{} },
	MethodKey(ClassQueue, QueueBindOK):    func() IncomingMethod { return &QueueBindOKMethod{} },
	MethodKey(ClassQueue, QueuePurgeOK):   func() IncomingMethod { return &QueuePurgeOKMethod{} },
	MethodKey(ClassQueue, QueueDeleteOK):  func() IncomingMethod { return &QueueDeleteOKMethod{} },
	MethodKey(ClassQueue, QueueUnbindOK):  func() IncomingMethod { return &QueueUnbindOKMethod{} },

	MethodKey(ClassBasic, BasicQosOK):     func() IncomingMethod { return &BasicQosOKMethod{} },
	MethodKey(ClassBasic, BasicConsumeOK): func() IncomingMethod { return &BasicConsumeOKMethod{} },
	MethodKey(ClassBasic, BasicCancelOK):  func() IncomingMethod { return &BasicCancelOKMethod{} },
	MethodKey(ClassBasic, BasicReturn):    func() IncomingMethod { return &BasicReturnMethod{} },
	MethodKey(ClassBasic, BasicDeliver):   func() IncomingMethod { return &BasicDeliverMethod{} },
	MethodKey(ClassBasic, BasicGetOK):     func() IncomingMethod { return &BasicGetOKMethod{} },
	MethodKey(ClassBasic, BasicGetEmpty):  func() IncomingMethod { return &BasicGetEmptyMethod{} },
	MethodKey(ClassBasic, BasicRecoverOK): func() IncomingMethod { return &BasicRecoverOKMethod{} },
}

// headerRegistry maps content classes to content header decoders. Only class
// basic carries content in AMQP 0-9-1.
var headerRegistry = map[uint16]func(raw RawHeader) (ContentHeader, error){
	ClassBasic: func(raw RawHeader) (ContentHeader, error) {
		h := &BasicHeader{}
		if err := h.Decode(raw); err != nil {
			return nil, err
		}
		return h, nil
	},
}

// methodNames covers every method type in the package, including those
// only ever sent by the client, for diagnostics.
var methodNames = func() map[uint32]string {
	all := []Method{
		&ChannelOpenMethod{}, &ChannelOpenOKMethod{}, &ChannelCloseMethod{}, &ChannelCloseOKMethod{},
		&ExchangeDeclareMethod{}, &ExchangeDeclareOKMethod{}, &ExchangeDeleteMethod{}, &ExchangeDeleteOKMethod{},
		&QueueDeclareMethod{}, &QueueDeclareOKMethod{}, &QueueBindMethod{}, &QueueBindOKMethod{},
		&QueuePurgeMethod{}, &QueuePurgeOKMethod{}, &QueueDeleteMethod{}, &QueueDeleteOKMethod{},
		&QueueUnbindMethod{}, &QueueUnbindOKMethod{},
		&BasicQosMethod{}, &BasicQosOKMethod{}, &BasicConsumeMethod{}, &BasicConsumeOKMethod{},
		&BasicCancelMethod{}, &BasicCancelOKMethod{}, &BasicPublishMethod{}, &BasicReturnMethod{},
		&BasicDeliverMethod{}, &BasicGetMethod{}, &BasicGetOKMethod{}, &BasicGetEmptyMethod{},
		&BasicAckMethod{}, &BasicRejectMethod{}, &BasicRecoverMethod{}, &BasicRecoverOKMethod{},
		&BasicNackMethod{},
	}
	names := make(map[uint32]string, len(all))
	for _, m := range all {
		names[MethodKey(m.ClassID(), m.MethodID())] = m.Name()
	}
	return names
}()

// DecodeMethod builds the typed method for a raw method record. Ids without a
// registered decoder fail with an UnknownClassOrMethodError carrying the
// class and method halves of the id.
func DecodeMethod(raw RawMethod) (IncomingMethod, error) {
	newMethod, ok := methodRegistry[raw.ID]
	if !ok {
		classID, methodID := SplitMethodKey(raw.ID)
		return nil, amqperrors.NewUnknownClassOrMethod(classID, methodID)
	}

	m := newMethod()
	if err := m.Decode(raw); err != nil {
		return nil, err
	}
	return m, nil
}

// DecodeHeader builds the typed content header for a raw header record.
// Unknown classes fail with an UnknownClassOrMethodError whose method is 0.
func DecodeHeader(raw RawHeader) (ContentHeader, error) {
	decode, ok := headerRegistry[raw.ClassID]
	if !ok {
		return nil, amqperrors.NewUnknownClassOrMethod(raw.ClassID, 0)
	}
	return decode(raw)
}

// Registered reports whether DecodeMethod accepts the id.
func Registered(id uint32) bool {
	_, ok := methodRegistry[id]
	return ok
}

// MethodName returns the protocol name for any method id known to the
// package, or "class.method" digits for unknown ids.
func MethodName(id uint32) string {
	if name, ok := methodNames[id]; ok {
		return name
	}
	classID, methodID := SplitMethodKey(id)
	return fmt.Sprintf("%d.%d", classID, methodID)
}
