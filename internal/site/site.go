// Package site serves a small local replica of the demo website the
// scenarios target. The test runner starts it so the deterministic suite can
// run without internet access; the page paths and element IDs match what the
// scenario catalog addresses.
package site

import (
	"fmt"
	"net/http"
	"time"
)

// Handler returns the replica site handler
func Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		writePage(w, "Demo Site", homeBody)
	})
	mux.HandleFunc("/elements", func(w http.ResponseWriter, r *http.Request) {
		writePage(w, "Elements", elementsBody)
	})
	mux.HandleFunc("/text-box", func(w http.ResponseWriter, r *http.Request) {
		writePage(w, "Text Box", textBoxBody)
	})
	mux.HandleFunc("/buttons", func(w http.ResponseWriter, r *http.Request) {
		writePage(w, "Buttons", buttonsBody)
	})
	mux.HandleFunc("/checkbox", func(w http.ResponseWriter, r *http.Request) {
		writePage(w, "Check Box", checkboxBody)
	})
	mux.HandleFunc("/radio-button", func(w http.ResponseWriter, r *http.Request) {
		writePage(w, "Radio Button", radioBody)
	})
	mux.HandleFunc("/webtables", func(w http.ResponseWriter, r *http.Request) {
		writePage(w, "Web Tables", webTablesBody)
	})
	mux.HandleFunc("/upload-download", func(w http.ResponseWriter, r *http.Request) {
		writePage(w, "Upload and Download", uploadBody)
	})
	mux.HandleFunc("/alerts", func(w http.ResponseWriter, r *http.Request) {
		writePage(w, "Alerts", alertsBody)
	})
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","server":"site","timestamp":%q}`, time.Now().Format(time.RFC3339))
	})

	return mux
}

// StartServer starts the replica site on the given port and returns the
// server for shutdown. It waits briefly so callers can navigate immediately.
func StartServer(port int) *http.Server {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: Handler(),
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("Site server error: %v\n", err)
		}
	}()

	time.Sleep(200 * time.Millisecond)
	return server
}

func writePage(w http.ResponseWriter, title, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head><title>%s</title></head>
<body>
<h1 class="page-title">%s</h1>
%s
</body>
</html>`, title, title, body)
}

const homeBody = `
<div class="cards">
  <a id="elements-card" href="/elements">Elements</a>
  <a id="forms-card" href="/text-box">Forms</a>
  <a id="interactions-card" href="/buttons">Interactions</a>
</div>`

const elementsBody = `
<ul class="menu">
  <li><a id="item-text-box" href="/text-box">Text Box</a></li>
  <li><a id="item-check-box" href="/checkbox">Check Box</a></li>
  <li><a id="item-radio-button" href="/radio-button">Radio Button</a></li>
  <li><a id="item-web-tables" href="/webtables">Web Tables</a></li>
  <li><a id="item-buttons" href="/buttons">Buttons</a></li>
</ul>`

const textBoxBody = `
<form onsubmit="return false">
  <label for="userName">Full Name</label>
  <input id="userName" name="userName" type="text" placeholder="Full Name">
  <label for="userEmail">Email</label>
  <input id="userEmail" name="userEmail" type="text" placeholder="name@example.com">
  <label for="currentAddress">Current Address</label>
  <textarea id="currentAddress" name="currentAddress" placeholder="Current Address"></textarea>
  <label for="permanentAddress">Permanent Address</label>
  <textarea id="permanentAddress" name="permanentAddress" placeholder="Permanent Address"></textarea>
  <button id="submit" type="button">Submit</button>
</form>
<div id="output" style="display:none">
  <p id="name"></p>
  <p id="email"></p>
  <p id="currentAddressOut"></p>
  <p id="permanentAddressOut"></p>
</div>
<script>
document.getElementById('submit').addEventListener('click', function() {
  document.getElementById('name').textContent = 'Name:' + document.getElementById('userName').value;
  document.getElementById('email').textContent = 'Email:' + document.getElementById('userEmail').value;
  document.getElementById('currentAddressOut').textContent = 'Current Address :' + document.getElementById('currentAddress').value;
  document.getElementById('permanentAddressOut').textContent = 'Permanent Address :' + document.getElementById('permanentAddress').value;
  document.getElementById('output').style.display = 'block';
});
</script>`

const buttonsBody = `
<div class="btn-group">
  <button id="doubleClickBtn">Double Click Me</button>
  <button id="rightClickBtn">Right Click Me</button>
  <button id="clickBtn">Click Me</button>
</div>
<div class="messages">
  <p id="doubleClickMessage" style="display:none"></p>
  <p id="rightClickMessage" style="display:none"></p>
  <p id="dynamicClickMessage" style="display:none"></p>
</div>
<script>
document.getElementById('doubleClickBtn').addEventListener('dblclick', function() {
  const m = document.getElementById('doubleClickMessage');
  m.textContent = 'You have done a double click';
  m.style.display = 'block';
});
document.getElementById('rightClickBtn').addEventListener('contextmenu', function(e) {
  e.preventDefault();
  const m = document.getElementById('rightClickMessage');
  m.textContent = 'You have done a right click';
  m.style.display = 'block';
});
document.getElementById('clickBtn').addEventListener('click', function() {
  const m = document.getElementById('dynamicClickMessage');
  m.textContent = 'You have done a dynamic click';
  m.style.display = 'block';
});
</script>`

const checkboxBody = `
<div class="checkbox-tree">
  <label for="homeCheckbox">Home</label>
  <input id="homeCheckbox" name="homeCheckbox" type="checkbox">
</div>
<div id="result" style="display:none"></div>
<script>
document.getElementById('homeCheckbox').addEventListener('change', function() {
  const r = document.getElementById('result');
  if (this.checked) {
    r.textContent = 'You have selected : home';
    r.style.display = 'block';
  } else {
    r.textContent = '';
    r.style.display = 'none';
  }
});
</script>`

const radioBody = `
<div class="radio-group">
  <input id="yesRadio" name="likeSite" type="radio" value="Yes">
  <label for="yesRadio">Yes</label>
  <input id="impressiveRadio" name="likeSite" type="radio" value="Impressive">
  <label for="impressiveRadio">Impressive</label>
</div>
<p id="radioResult" style="display:none"></p>
<script>
function onRadio() {
  const r = document.getElementById('radioResult');
  r.textContent = 'You have selected ' + document.querySelector('input[name=likeSite]:checked').value;
  r.style.display = 'block';
}
document.getElementById('yesRadio').addEventListener('change', onRadio);
document.getElementById('impressiveRadio').addEventListener('change', onRadio);
</script>`

const webTablesBody = `
<button id="addNewRecordButton">Add</button>
<table id="recordsTable">
  <thead>
    <tr><th>First Name</th><th>Last Name</th><th>Age</th><th>Email</th><th>Salary</th><th>Department</th></tr>
  </thead>
  <tbody>
    <tr><td>Cierra</td><td>Vega</td><td>39</td><td>cierra@example.com</td><td>10000</td><td>Insurance</td></tr>
    <tr><td>Alden</td><td>Cantrell</td><td>45</td><td>alden@example.com</td><td>12000</td><td>Compliance</td></tr>
    <tr><td>Kierra</td><td>Gentry</td><td>29</td><td>kierra@example.com</td><td>2000</td><td>Legal</td></tr>
  </tbody>
</table>
<div id="registration-form" style="display:none">
  <input id="firstName" name="firstName" type="text" placeholder="First Name">
  <input id="lastName" name="lastName" type="text" placeholder="Last Name">
  <input id="userEmail" name="userEmail" type="text" placeholder="Email">
  <input id="age" name="age" type="text" placeholder="Age">
  <input id="salary" name="salary" type="text" placeholder="Salary">
  <input id="department" name="department" type="text" placeholder="Department">
  <button id="submit" type="button">Submit</button>
</div>
<script>
document.getElementById('addNewRecordButton').addEventListener('click', function() {
  document.getElementById('registration-form').style.display = 'block';
});
document.getElementById('submit').addEventListener('click', function() {
  const row = document.createElement('tr');
  ['firstName', 'lastName', 'age', 'userEmail', 'salary', 'department'].forEach(function(id) {
    const cell = document.createElement('td');
    cell.textContent = document.getElementById(id).value;
    row.appendChild(cell);
  });
  document.querySelector('#recordsTable tbody').appendChild(row);
  document.getElementById('registration-form').style.display = 'none';
});
</script>`

const uploadBody = `
<label for="uploadFile">Select a file</label>
<input id="uploadFile" name="uploadFile" type="file">
<p id="uploadedFilePath" style="display:none"></p>
<script>
document.getElementById('uploadFile').addEventListener('change', function() {
  const p = document.getElementById('uploadedFilePath');
  if (this.files.length > 0) {
    p.textContent = 'C:\\fakepath\\' + this.files[0].name;
    p.style.display = 'block';
  }
});
</script>`

const alertsBody = `
<button id="alertButton">Click me</button>
<button id="confirmButton">Click me</button>
<p id="confirmResult" style="display:none"></p>
<script>
document.getElementById('alertButton').addEventListener('click', function() {
  alert('You clicked a button');
});
document.getElementById('confirmButton').addEventListener('click', function() {
  const ok = confirm('Do you confirm action?');
  const p = document.getElementById('confirmResult');
  p.textContent = 'You selected ' + (ok ? 'Ok' : 'Cancel');
  p.style.display = 'block';
});
</script>`
