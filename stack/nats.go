package stack

import (
	"encoding/json"
	"log"
	"time"

	"github.com/edumesh/Backend_ELearning/settings"
	"github.com/nats-io/nats.go"
)

var settingsData = settings.GetSettings()
var natsStack *NatsStack

type NatsStack struct {
	conn *nats.Conn
}

// Response shape of the NestJS-side services on the bus
type NatsNestJSRes struct {
	ID       string      `json:"id"`
	Response interface{} `json:"response"`
}

func newConnection() *nats.Conn {
	conn, err := nats.Connect(
		settingsData.NATS_HOST,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
	)
	if err != nil {
		panic(err)
	}
	return conn
}

func (stack *NatsStack) Publish(subject string, data []byte) error {
	return stack.conn.Publish(subject, data)
}

func (stack *NatsStack) PublishEncode(subject string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return stack.conn.Publish(subject, data)
}

func (stack *NatsStack) Request(subject string, data []byte) (*nats.Msg, error) {
	return stack.conn.Request(subject, data, 10*time.Second)
}

func (stack *NatsStack) Subscribe(subject string, handler func(m *nats.Msg)) (*nats.Subscription, error) {
	return stack.conn.Subscribe(subject, handler)
}

func (stack *NatsStack) DecodeDataNest(data []byte) (map[string]interface{}, error) {
	var request map[string]interface{}
	if err := json.Unmarshal(data, &request); err != nil {
		return nil, err
	}
	payload, ok := request["data"].(map[string]interface{})
	if !ok {
		return request, nil
	}
	return payload, nil
}

func NewNats() *NatsStack {
	if natsStack == nil {
		natsStack = &NatsStack{
			conn: newConnection(),
		}
		log.Printf("NATS connected to %s", settingsData.NATS_HOST)
	}
	return natsStack
}
