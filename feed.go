/*  D3pixelcanvas - On-chain pixel canvas program and local ledger tooling
    Copyright (C) 2019  David Vogel

    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.  */

package main

import (
	"fmt"
	"image"
	"image/color"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	feedSendBuffer   = 256
	feedWriteTimeout = 10 * time.Second
)

// Forwards committed canvas changes to websocket clients.
//
// Messages are binary and use the same field layout as the recording events, but big-endian:
//
//	10, x i32, y i32, r, g, b
//	30, chunk x i32, chunk y i32, chunk data
type canvasFeed struct {
	sync.RWMutex
	Closed bool

	Clients  map[*feedClient]struct{}
	Upgrader websocket.Upgrader
}

type feedClient struct {
	Conn *websocket.Conn
	Send chan []byte
}

func newCanvasFeed() *canvasFeed {
	return &canvasFeed{
		Clients: map[*feedClient]struct{}{},
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (cf *canvasFeed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := cf.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debugf("Can't upgrade feed connection from %v: %v", r.RemoteAddr, err)
		return
	}

	client := &feedClient{
		Conn: conn,
		Send: make(chan []byte, feedSendBuffer),
	}

	cf.Lock()
	if cf.Closed {
		cf.Unlock()
		conn.Close()
		return
	}
	cf.Clients[client] = struct{}{}
	cf.Unlock()

	log.Debugf("Feed client %v connected", r.RemoteAddr)

	// Writer goroutine, ends when the send channel is closed
	go func() {
		defer conn.Close()
		for message := range client.Send {
			conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
			if err := conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
				log.Debugf("Can't write to feed client %v: %v", r.RemoteAddr, err)
				return
			}
		}
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}()

	// Discard everything the client sends, until it disconnects
	for {
		if _, _, err := conn.NextReader(); err != nil {
			break
		}
	}

	cf.removeClient(client)
	log.Debugf("Feed client %v disconnected", r.RemoteAddr)
}

func (cf *canvasFeed) removeClient(client *feedClient) {
	cf.Lock()
	defer cf.Unlock()

	if _, ok := cf.Clients[client]; ok {
		delete(cf.Clients, client)
		close(client.Send)
	}
}

// Queues the message for every client. Clients that can't keep up are dropped.
func (cf *canvasFeed) broadcast(message []byte) error {
	cf.Lock()
	defer cf.Unlock()
	if cf.Closed {
		return fmt.Errorf("Listener is closed")
	}

	for client := range cf.Clients {
		select {
		case client.Send <- message:
		default:
			log.Warnf("Dropping slow feed client %v", client.Conn.RemoteAddr())
			delete(cf.Clients, client)
			close(client.Send)
		}
	}

	return nil
}

func (cf *canvasFeed) handleSetPixel(pos image.Point, col color.RGBA) error {
	message := make([]byte, 1+setPixelDataSize)
	message[0] = recordingTypeSetPixel
	copy(message[1:], setPixelArgs{X: int32(pos.X), Y: int32(pos.Y), R: col.R, G: col.G, B: col.B}.encode())

	return cf.broadcast(message)
}

func (cf *canvasFeed) handleChunkCreate(cc chunkCoordinate, data []byte) error {
	message := make([]byte, 1+4+4, 1+4+4+len(data))
	message[0] = recordingTypeChunkCreate
	encodeI32(message[1:], int32(cc.X))
	encodeI32(message[5:], int32(cc.Y))
	message = append(message, data...)

	return cf.broadcast(message)
}

// Disconnects all clients.
func (cf *canvasFeed) Close() {
	cf.Lock()
	defer cf.Unlock()

	cf.Closed = true
	for client := range cf.Clients {
		delete(cf.Clients, client)
		close(client.Send)
	}
}
