package models

// Record is a serialized transaction ready to be handed to the broker client.
type Record struct {
	Key   []byte
	Value []byte
	Topic string
}

// Delivery is the outcome of one asynchronous send as reported by the broker client.
type Delivery struct {
	Topic     string `json:"topic" bson:"topic"`
	Partition int32  `json:"partition" bson:"partition"`
	Offset    int64  `json:"offset" bson:"offset"`
	Key       string `json:"key" bson:"_id"`
	Count     int64  `json:"count" bson:"count"`
	Error     string `json:"error,omitempty" bson:"error,omitempty"`
	Timestamp int64  `json:"timestamp" bson:"timestamp"`
}

// Failed reports whether the delivery carries an error.
func (d Delivery) Failed() bool { return d.Error != "" }
