package printing

// InvoiceTemplate is the built-in invoice layout. It is executed with
// *order.InvoiceData.
const InvoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Invoice {{.Invoice.InvoiceNumber}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #1f2937; }
  h1 { font-size: 22px; margin: 0; color: #0f4c81; }
  .header, .parties { display: flex; justify-content: space-between; margin-bottom: 18px; }
  .muted { color: #6b7280; }
  table { width: 100%; border-collapse: collapse; margin-top: 12px; }
  th { background: #0f4c81; color: #fff; text-align: left; padding: 6px; }
  td { border-bottom: 1px solid #e5e7eb; padding: 6px; }
  .num { text-align: right; }
  .totals td { border: none; }
  .grand td { font-weight: bold; font-size: 14px; border-top: 2px solid #0f4c81; }
  .qr { margin-top: 24px; font-family: monospace; font-size: 10px; }
</style>
</head>
<body>
<div class="header">
  <div>
    <h1>{{.Company.Name}}</h1>
    <div class="muted">{{.Company.Address}}</div>
    {{if notEmpty .Company.Phone}}<div class="muted">{{.Company.Phone}}</div>{{end}}
    <div class="muted">{{.Company.Email}}</div>
    {{if notEmpty .Company.KRAPIN}}<div class="muted">KRA PIN: {{.Company.KRAPIN}}</div>{{end}}
    {{if notEmpty .Company.Website}}<div class="muted">{{.Company.Website}}</div>{{end}}
  </div>
  <div>
    <h1>INVOICE</h1>
    <div>No. {{.Invoice.InvoiceNumber}}</div>
    <div>Order {{.Order.OrderNumber}}</div>
    <div>Issued {{formatDate .Invoice.IssueDate}}</div>
    {{if notEmpty .Invoice.DueDate}}<div>Due {{formatDate .Invoice.DueDate}}</div>{{end}}
  </div>
</div>

<div class="parties">
  <div>
    <strong>Bill to</strong>
    <div>{{.Order.ShippingAddress.FullName}}</div>
    <div>{{.Order.ShippingAddress.Address}}</div>
    <div>{{.Order.ShippingAddress.City}}, {{.Order.ShippingAddress.County}} {{.Order.ShippingAddress.PostalCode}}</div>
    <div>{{.Order.ShippingAddress.Phone}}</div>
    <div>{{.Order.ShippingAddress.Email}}</div>
  </div>
  <div>
    <strong>Payment</strong>
    <div>Method: {{upper .Order.PaymentMethod}}</div>
    <div>Status: {{statusText .Order.PaymentStatus}}</div>
    {{with .Order.InstallationDetails}}
    <div>Installation: {{statusText .Method}}</div>
    {{if notEmpty .VehicleRegistration}}<div>Vehicle: {{.VehicleRegistration}}</div>{{end}}
    {{end}}
  </div>
</div>

<table>
  <thead>
    <tr><th>Item</th><th class="num">Qty</th><th class="num">Unit price</th><th class="num">Amount</th></tr>
  </thead>
  <tbody>
  {{range .Order.Items}}
    <tr>
      <td>{{.ProductName}}</td>
      <td class="num">{{formatNumber .Quantity}}</td>
      <td class="num">{{formatMoneyRaw .UnitPrice}}</td>
      <td class="num">{{formatMoneyRaw .TotalPrice}}</td>
    </tr>
  {{end}}
  </tbody>
</table>

<table class="totals">
  <tr><td></td><td class="num">Subtotal</td><td class="num">{{formatMoney .Order.Subtotal}}</td></tr>
  {{if notEmpty .Order.Tax}}<tr><td></td><td class="num">VAT</td><td class="num">{{formatMoney .Order.Tax}}</td></tr>{{end}}
  {{if notEmpty .Order.Shipping}}<tr><td></td><td class="num">Shipping</td><td class="num">{{formatMoney .Order.Shipping}}</td></tr>{{end}}
  <tr class="grand"><td></td><td class="num">Total</td><td class="num">{{formatMoney .Invoice.Total}}</td></tr>
</table>

<div class="qr">Verification code: {{.Invoice.QRCode}}</div>
</body>
</html>
`
