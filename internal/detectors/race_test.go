package detectors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bridgeSource = `
message Request { queryId: Int; }
message Response { queryId: Int; }

contract Bridge {
    queryId: Int = 0;
    owner: Address;

    init(owner: Address) {
        self.owner = owner;
    }

    receive(msg: Request) {
        self.queryId = msg.queryId;
        send(SendParameters{ to: self.owner, value: 0 });
    }

    receive(msg: Response) {
        require(msg.queryId == self.queryId, "unexpected response");
    }
}`

func TestRaceOnStoredQueryID(t *testing.T) {
	ws := check(t, NewRaceCondition(DefaultOptions()), bridgeSource)
	require.Len(t, ws, 2)

	assert.Equal(t, `Potential race condition: Function "Bridge::receive(Request)" writes to state variable "queryId" and sends messages. `+
		`This variable is also accessed by: Bridge::receive(Response). `+
		`Other messages may arrive and modify this state between send and response.`, ws[0].Message)
	assert.Equal(t, 13, ws[0].Position.Line)
	assert.Empty(t, ws[0].ExtraDescription)

	assert.Contains(t, ws[1].Message, `Receiver "Bridge::receive(Response)" reads state variable "queryId"`)
	assert.Contains(t, ws[1].Message, "message-sending functions: Bridge::receive(Request).")
	assert.Contains(t, ws[1].ExtraDescription, "query_id or nonce")
	assert.Equal(t, 18, ws[1].Position.Line)
}

func TestSendThroughHelper(t *testing.T) {
	ws := check(t, NewRaceCondition(DefaultOptions()), `
contract Vault {
    pending: Int = 0;

    receive("lock") {
        self.pending = 1;
        self.notifyOwner();
    }

    fun notifyOwner() {
        send(SendParameters{ to: sender(), value: 0 });
    }

    get fun pending(): Int {
        return self.pending;
    }
}`)

	require.Len(t, ws, 1)
	assert.Contains(t, ws[0].Message, `Function "Vault::receive("lock")" writes to state variable "pending"`)
	assert.Contains(t, ws[0].Message, "accessed by: Vault::pending.")
}

func TestNoRaceWithoutSharedState(t *testing.T) {
	ws := check(t, NewRaceCondition(DefaultOptions()), `
message Request { queryId: Int; }

trait Shared {
    counter: Int;

    receive("bump") {
        self.counter = self.counter + 1;
        send(SendParameters{ to: sender(), value: 0 });
    }
}

contract Relay {
    counter: Int = 0;

    receive(msg: Request) {
        let id = msg.queryId;
        send(SendParameters{ to: sender(), value: id });
    }

    fun internalOnly(): Int {
        return self.counter;
    }
}`)
	assert.Empty(t, ws)
}
