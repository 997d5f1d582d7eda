// Package msgs provides the L1 protocol schema.
package msgs

// L1 protocol is communicated between L1 controller and upstream consumers
// (L2) over packet transports (MQTT, WebSocket, TCP stream). Every packet is
// a protobuf encoded Request or Reply. A Request carries one L0 command and
// a sequence number which is echoed back in the Reply.
//
// Producer: L1 controller
// Consumer: L2 brain
