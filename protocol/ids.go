package protocol

// Class IDs
const (
	ClassConnection = 10
	ClassChannel    = 20
	ClassExchange   = 40
	ClassQueue      = 50
	ClassBasic      = 60
)

// Method IDs for channel class
const (
	ChannelOpen    = 10 // 20.10 - class ID 20, method ID 10
	ChannelOpenOK  = 11 // 20.11 - class ID 20, method ID 11
	ChannelClose   = 40 // 20.40 - class ID 20, method ID 40
	ChannelCloseOK = 41 // 20.41 - class ID 20, method ID 41
)

// Method IDs for exchange class
const (
	ExchangeDeclare   = 10 // 40.10 - class ID 40, method ID 10
	ExchangeDeclareOK = 11 // 40.11 - class ID 40, method ID 11
	ExchangeDelete    = 20 // 40.20 - class ID 40, method ID 20
	ExchangeDeleteOK  = 21 // 40.21 - class ID 40, method ID 21
)

// Method IDs for queue class
const (
	QueueDeclare   = 10 // 50.10 - class ID 50, method ID 10
	QueueDeclareOK = 11 // 50.11 - class ID 50, method ID 11
	QueueBind      = 20 // 50.20 - class ID 50, method ID 20
	QueueBindOK    = 21 // 50.21 - class ID 50, method ID 21
	QueuePurge     = 30 // 50.30 - class ID 50, method ID 30
	QueuePurgeOK   = 31 // 50.31 - class ID 50, method ID 31
	QueueDelete    = 40 // 50.40 - class ID 50, method ID 40
	QueueDeleteOK  = 41 // 50.41 - class ID 50, method ID 41
	QueueUnbind    = 50 // 50.50 - class ID 50, method ID 50
	QueueUnbindOK  = 51 // 50.51 - class ID 50, method ID 51
)

// Method IDs for basic class
const (
	BasicQos       = 10  // 60.10 - class ID 60, method ID 10
	BasicQosOK     = 11  // 60.11 - class ID 60, method ID 11
	BasicConsume   = 20  // 60.20 - class ID 60, method ID 20
	BasicConsumeOK = 21  // 60.21 - class ID 60, method ID 21
	BasicCancel    = 30  // 60.30 - class ID 60, method ID 30
	BasicCancelOK  = 31  // 60.31 - class ID 60, method ID 31
	BasicPublish   = 40  // 60.40 - class ID 60, method ID 40
	BasicReturn    = 50  // 60.50 - class ID 60, method ID 50
	BasicDeliver   = 60  // 60.60 - class ID 60, method ID 60
	BasicGet       = 70  // 60.70 - class ID 60, method ID 70
	BasicGetOK     = 71  // 60.71 - class ID 60, method ID 71
	BasicGetEmpty  = 72  // 60.72 - class ID 60, method ID 72
	BasicAck       = 80  // 60.80 - class ID 60, method ID 80
	BasicReject    = 90  // 60.90 - class ID 60, method ID 90
	BasicRecover   = 110 // 60.110 - class ID 60, method ID 110
	BasicRecoverOK = 111 // 60.111 - class ID 60, method ID 111
	BasicNack      = 120 // 60.120 - class ID 60, method ID 120
)
