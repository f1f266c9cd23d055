package server

// graphiqlPage is a minimal in-browser form for posting an operation
// and viewing its compiled plan or problem list — not the full GraphiQL
// IDE bundle, since this endpoint has no live data to autocomplete
// against.
var graphiqlPage = []byte(`<!DOCTYPE html>
<html>
<head><title>qgraphql compiler</title></head>
<body>
<textarea id="q" rows="10" cols="80">{ }</textarea><br>
<button onclick="run()">Compile</button>
<pre id="out"></pre>
<script>
function run() {
  fetch(location.pathname, {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({query: document.getElementById('q').value})
  }).then(r => r.json()).then(j => {
    document.getElementById('out').textContent = JSON.stringify(j, null, 2);
  });
}
</script>
</body>
</html>`)
